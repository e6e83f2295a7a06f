// Package track generates ground-track trajectories from propagated orbital
// state, including the antimeridian continuity correction that keeps plotted
// lines from jumping across the map.
package track

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/RadekDuba/starlink/internal/propagation"
	"github.com/RadekDuba/starlink/internal/transform"
)

// Config holds the propagation window for one trajectory.
type Config struct {
	Start  time.Time
	Window time.Duration // total span covered by the trajectory
	Step   time.Duration // fixed interval between points
}

// Steps returns the exact number of propagation steps the window yields.
func (c Config) Steps() int {
	if c.Step <= 0 {
		return 0
	}
	return int(c.Window.Minutes() / c.Step.Minutes())
}

// Trajectory is a time-ordered ground track: one geodetic point per accepted
// step, with a parallel list of RFC 3339 timestamps of equal length.
type Trajectory struct {
	Points     []transform.GeodeticPoint
	Timestamps []string
}

// Generate propagates one satellite across the configured window and returns
// its unwrapped ground track.
//
// A propagator error at any step fails the whole trajectory; the caller is
// expected to skip the satellite. A geometrically invalid point (out-of-range
// latitude/longitude, typically from a degenerate orbit) only drops that
// single step. Points and timestamps always stay the same length, in strictly
// increasing time order.
func Generate(prop propagation.Propagator, cfg Config, logger *slog.Logger) (Trajectory, error) {
	steps := cfg.Steps()
	traj := Trajectory{
		Points:     make([]transform.GeodeticPoint, 0, steps),
		Timestamps: make([]string, 0, steps),
	}

	current := cfg.Start.UTC()
	for i := 0; i < steps; i++ {
		teme, err := prop.PositionAt(current)
		if err != nil {
			return Trajectory{}, fmt.Errorf("step %d at %s: %w", i, current.Format(time.RFC3339), err)
		}

		ecef := transform.TEMEToECEF(teme, current)
		point := transform.ECEFToGeodetic(ecef)
		if point.InRange() {
			traj.Points = append(traj.Points, point)
			traj.Timestamps = append(traj.Timestamps, current.Format(time.RFC3339))
		} else {
			logger.Debug("dropping out-of-range point",
				"step", i,
				"lat", point.LatDeg,
				"lon", point.LonDeg,
			)
		}

		current = current.Add(cfg.Step)
	}

	UnwrapLongitudes(traj.Points)
	return traj, nil
}

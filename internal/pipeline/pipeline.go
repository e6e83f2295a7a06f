// Package pipeline orchestrates the per-satellite trajectory batch: freshness
// gate, propagation, frame transformation, and GeoJSON assembly.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/RadekDuba/starlink/internal/geojson"
	"github.com/RadekDuba/starlink/internal/metrics"
	"github.com/RadekDuba/starlink/internal/propagation"
	"github.com/RadekDuba/starlink/internal/tle"
	"github.com/RadekDuba/starlink/internal/track"
)

// ErrStaleElements marks an element set whose epoch is too old (or too
// malformed) to propagate.
var ErrStaleElements = errors.New("element set epoch is stale or malformed")

var errNotProcessed = errors.New("batch cancelled before processing")

// Config holds batch parameters. Window and Step are supplied by the caller;
// the reference run uses 24h / 5m.
type Config struct {
	Start   time.Time
	Window  time.Duration
	Step    time.Duration
	MaxAge  time.Duration // freshness budget for element sets
	Workers int
}

// Result is the outcome of one batch: the assembled collection in catalog
// order, plus the names of skipped satellites in catalog order.
type Result struct {
	Collection geojson.FeatureCollection
	Skipped    []string
}

// Pipeline runs the trajectory batch over a catalog of element sets.
type Pipeline struct {
	cfg     Config
	factory propagation.Factory
	logger  *slog.Logger
}

// New creates a Pipeline. A nil factory selects the SGP4 model; tests inject
// deterministic fakes here.
func New(cfg Config, factory propagation.Factory, logger *slog.Logger) *Pipeline {
	if factory == nil {
		factory = propagation.NewSGP4
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = tle.DefaultMaxAge
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg, factory: factory, logger: logger}
}

// process turns one element set into a feature, or reports why the satellite
// must be skipped. It is pure with respect to the rest of the batch: no
// shared state, so satellites can run in parallel.
func (p *Pipeline) process(entry tle.Entry) (geojson.Feature, error) {
	if !tle.Fresh(entry.Line1, p.cfg.Start, p.cfg.MaxAge) {
		return geojson.Feature{}, ErrStaleElements
	}

	prop, err := p.factory(entry.Line1, entry.Line2)
	if err != nil {
		return geojson.Feature{}, err
	}

	traj, err := track.Generate(prop, track.Config{
		Start:  p.cfg.Start,
		Window: p.cfg.Window,
		Step:   p.cfg.Step,
	}, p.logger)
	if err != nil {
		return geojson.Feature{}, err
	}

	coords := make([][]float64, len(traj.Points))
	for i, pt := range traj.Points {
		coords[i] = []float64{pt.LonDeg, pt.LatDeg, pt.AltM}
	}

	return geojson.Feature{
		Type:     "Feature",
		Geometry: geojson.NewLineString(coords),
		Properties: geojson.Properties{
			Name:        entry.Name,
			Timestamps:  traj.Timestamps,
			LaunchGroup: tle.LaunchGroup(entry.Line1),
		},
	}, nil
}

type outcome struct {
	feature geojson.Feature
	err     error
}

// Run processes the catalog and assembles the feature collection. Satellites
// are independent, so they run on a small worker pool; outcomes are indexed
// back into catalog order, which also keeps the skip list ordered. A single
// satellite's failure never aborts the batch.
func (p *Pipeline) Run(ctx context.Context, entries []tle.Entry) Result {
	start := time.Now()
	outcomes := make([]outcome, len(entries))
	for i := range outcomes {
		// Overwritten by the workers; survives only if the batch is cancelled
		// before the entry is dispatched.
		outcomes[i].err = errNotProcessed
	}

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := range entries {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	workers := p.cfg.Workers
	if workers > len(entries) && len(entries) > 0 {
		workers = len(entries)
	}

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := range jobs {
				feature, err := p.process(entries[i])
				outcomes[i] = outcome{feature: feature, err: err}
			}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}

	attempted := track.Config{Window: p.cfg.Window, Step: p.cfg.Step}.Steps()

	features := make([]geojson.Feature, 0, len(entries))
	var skipped []string
	for i, out := range outcomes {
		if out.err != nil {
			skipped = append(skipped, entries[i].Name)
			metrics.RecordSkipped(skipReason(out.err))
			p.logger.Warn("skipping satellite",
				"name", entries[i].Name,
				"norad_id", entries[i].NORADID,
				"error", out.err,
			)
			continue
		}
		features = append(features, out.feature)
		metrics.RecordProcessed()
		metrics.AddPointsDropped(attempted - len(out.feature.Properties.Timestamps))
	}

	duration := time.Since(start)
	metrics.RecordBatchDuration(duration)
	p.logger.Info("batch complete",
		"features", len(features),
		"skipped", len(skipped),
		"duration_ms", duration.Milliseconds(),
	)

	return Result{
		Collection: geojson.NewFeatureCollection(features),
		Skipped:    skipped,
	}
}

// skipReason maps a per-satellite failure onto a bounded metrics label.
func skipReason(err error) string {
	if errors.Is(err, ErrStaleElements) {
		return "stale"
	}
	if errors.Is(err, errNotProcessed) {
		return "cancelled"
	}
	return "propagation"
}

// Package propagation wraps the external SGP4 orbital model behind a small
// interface so the trajectory pipeline can be exercised with a deterministic
// fake.
package propagation

import (
	"time"

	"github.com/RadekDuba/starlink/internal/transform"
)

// Propagator produces one satellite's TEME position at an absolute time.
type Propagator interface {
	PositionAt(t time.Time) (transform.PositionTEME, error)
}

// Factory builds a Propagator from a parsed two-line element set.
type Factory func(line1, line2 string) (Propagator, error)

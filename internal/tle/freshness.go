package tle

import (
	"strings"
	"time"
)

// DefaultMaxAge is how stale an element set may be before propagation results
// stop being trustworthy.
const DefaultMaxAge = 30 * 24 * time.Hour

// Fresh reports whether the epoch embedded in line1 is strictly younger than
// maxAge at the given reference time. Malformed input (short line, non-numeric
// epoch fields) is reported as not fresh rather than as an error.
//
// The check is one-directional: an epoch in the future is accepted, since the
// batch normally runs shortly after the catalog is published.
func Fresh(line1 string, now time.Time, maxAge time.Duration) bool {
	if len(line1) < 32 {
		return false
	}
	epoch, err := parseEpoch(strings.TrimSpace(line1[18:32]))
	if err != nil {
		return false
	}
	return now.Sub(epoch) < maxAge
}

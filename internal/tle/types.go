package tle

import "time"

// Entry represents a single satellite's two-line element set.
// Immutable once parsed.
type Entry struct {
	NORADID int
	Name    string
	Epoch   time.Time
	Line1   string
	Line2   string
}

// Dataset represents a complete element-set catalog from one source.
type Dataset struct {
	Source     string
	FetchedAt  time.Time
	Satellites []Entry
}

package tle

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Real ISS and Starlink elements used as fixtures throughout the tests.
const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   24100.50000000  .00016717  00000-0  10270-3 0  9005"
	issLine2 = "2 25544  51.6400 100.0000 0001000   0.0000   0.0000 15.50000000    09"

	starlinkName  = "STARLINK-1007"
	starlinkLine1 = "1 44713U 19074A   24100.50000000  .00001000  00000-0  10000-4 0  9995"
	starlinkLine2 = "2 44713  53.0000 200.0000 0001500  90.0000 270.0000 15.06000000    05"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{issName, issLine1, issLine2, starlinkName, starlinkLine1, starlinkLine2}, "\n") + "\n"

	entries, err := Parse(strings.NewReader(input), testLogger)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	iss := entries[0]
	if iss.Name != "ISS (ZARYA)" {
		t.Errorf("name = %q, want %q", iss.Name, "ISS (ZARYA)")
	}
	if iss.NORADID != 25544 {
		t.Errorf("NORAD ID = %d, want 25544", iss.NORADID)
	}
	// Epoch 24100.5 = day 100.5 of 2024 = April 9, 12:00 UTC.
	wantEpoch := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	if !iss.Epoch.Equal(wantEpoch) {
		t.Errorf("epoch = %v, want %v", iss.Epoch, wantEpoch)
	}

	if entries[1].NORADID != 44713 {
		t.Errorf("second entry NORAD ID = %d, want 44713", entries[1].NORADID)
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	// A stray name line without element lines, followed by a valid entry.
	input := strings.Join([]string{
		"GARBAGE SAT",
		"not an element line",
		issName,
		issLine1,
		issLine2,
	}, "\n")

	entries, err := Parse(strings.NewReader(input), testLogger)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after resync, got %d", len(entries))
	}
	if entries[0].NORADID != 25544 {
		t.Errorf("NORAD ID = %d, want 25544", entries[0].NORADID)
	}
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(strings.NewReader(""), testLogger)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}

func TestParseEpoch(t *testing.T) {
	tests := []struct {
		epoch string
		want  time.Time
	}{
		{"24100.50000000", time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)},
		{"98001.00000000", time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC)},
		// Two-digit year pivot: 56 → 2056, 57 → 1957.
		{"56001.00000000", time.Date(2056, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"57001.00000000", time.Date(1957, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"00365.25000000", time.Date(2000, 12, 30, 6, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.epoch, func(t *testing.T) {
			got, err := parseEpoch(tt.epoch)
			if err != nil {
				t.Fatalf("parseEpoch(%q) failed: %v", tt.epoch, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseEpoch(%q) = %v, want %v", tt.epoch, got, tt.want)
			}
		})
	}
}

func TestParseEpochInvalid(t *testing.T) {
	for _, s := range []string{"", "24", "XX100.5", "24abc.def"} {
		if _, err := parseEpoch(s); err == nil {
			t.Errorf("parseEpoch(%q): expected error, got nil", s)
		}
	}
}

// TestEpochRoundTrip verifies that decoding an epoch and re-deriving the
// two-digit-year/day-of-year pair reproduces the original encoding.
func TestEpochRoundTrip(t *testing.T) {
	encodings := []string{
		"24100.50000000",
		"98365.00000000",
		"00001.00000000",
		"24032.25000000",
	}

	for _, enc := range encodings {
		epoch, err := parseEpoch(enc)
		if err != nil {
			t.Fatalf("parseEpoch(%q) failed: %v", enc, err)
		}

		midnight := time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC)
		doy := float64(epoch.YearDay()) + epoch.Sub(midnight).Hours()/24.0
		reencoded := fmt.Sprintf("%02d%012.8f", epoch.Year()%100, doy)

		if reencoded != enc {
			t.Errorf("round trip %q -> %v -> %q", enc, epoch, reencoded)
		}
	}
}

func TestLaunchGroup(t *testing.T) {
	tests := []struct {
		name  string
		line1 string
		want  string
	}{
		{"ISS 1998 launch", issLine1, "1998-Launch-067"},
		{"Starlink 2019 launch", starlinkLine1, "2019-Launch-074"},
		{"pre-pivot year maps to 2000s", "1 00001U 56001A   24100.50000000  .00000000  00000-0  00000-0 0  9990", "2056-Launch-001"},
		{"too short", "1 25544U", UnknownLaunchGroup},
		{"non-numeric year", "1 25544U XX067A   24100.50000000  .00016717  00000-0  10270-3 0  9005", UnknownLaunchGroup},
		{"non-numeric sequence", "1 25544U 98xyzA   24100.50000000  .00016717  00000-0  10270-3 0  9005", UnknownLaunchGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LaunchGroup(tt.line1); got != tt.want {
				t.Errorf("LaunchGroup = %q, want %q", got, tt.want)
			}
		})
	}
}

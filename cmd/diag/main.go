// Command diag runs the trajectory pipeline over a local TLE file and prints
// a summary, for checking a catalog snapshot without hitting the network.
//
// Usage: diag <tle-file> [satellite-count]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/RadekDuba/starlink/internal/pipeline"
	"github.com/RadekDuba/starlink/internal/tle"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: diag <tle-file> [satellite-count]")
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Println("ERROR opening TLE file:", err)
		os.Exit(1)
	}
	defer f.Close()

	entries, err := tle.Parse(f, logger)
	if err != nil {
		fmt.Println("ERROR parsing TLE:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d TLE entries\n", len(entries))

	count := 5
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			count = n
		}
	}
	if count > len(entries) {
		count = len(entries)
	}
	subset := entries[:count]

	cfg := pipeline.Config{
		Start:  time.Now().UTC(),
		Window: 24 * time.Hour,
		Step:   5 * time.Minute,
	}
	fmt.Printf("Batch start: %v (window %v, step %v)\n", cfg.Start.Format(time.RFC3339), cfg.Window, cfg.Step)

	result := pipeline.New(cfg, nil, logger).Run(context.Background(), subset)

	for _, feat := range result.Collection.Features {
		coords := feat.Geometry.Coordinates
		fmt.Printf("  %s [%s]: %d points", feat.Properties.Name, feat.Properties.LaunchGroup, len(coords))
		if len(coords) > 0 {
			first := coords[0]
			last := coords[len(coords)-1]
			fmt.Printf(" (first lon=%.2f lat=%.2f alt=%.0fm, last lon=%.2f lat=%.2f)",
				first[0], first[1], first[2], last[0], last[1])
		}
		fmt.Println()
	}

	fmt.Printf("\nFeatures: %d, skipped: %d\n", len(result.Collection.Features), len(result.Skipped))
	for _, name := range result.Skipped {
		fmt.Printf("  skipped: %s\n", name)
	}
}

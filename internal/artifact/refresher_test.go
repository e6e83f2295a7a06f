package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RadekDuba/starlink/internal/pipeline"
	"github.com/RadekDuba/starlink/internal/propagation"
	"github.com/RadekDuba/starlink/internal/tle"
	"github.com/RadekDuba/starlink/internal/transform"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

type fixedPropagator struct{}

func (fixedPropagator) PositionAt(t time.Time) (transform.PositionTEME, error) {
	return transform.PositionTEME{X: 6928.0, Y: 0, Z: 0}, nil
}

func fakeFactory(line1, line2 string) (propagation.Propagator, error) {
	return fixedPropagator{}, nil
}

// freshCatalog synthesizes a one-satellite catalog whose epoch is one day old.
func freshCatalog() string {
	epoch := time.Now().UTC().Add(-24 * time.Hour)
	midnight := time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC)
	doy := float64(epoch.YearDay()) + epoch.Sub(midnight).Hours()/24.0
	line1 := fmt.Sprintf("1 25544U 98067A   %02d%012.8f  .00016717  00000-0  10270-3 0  9005",
		epoch.Year()%100, doy)
	line2 := "2 25544  51.6400 100.0000 0001000   0.0000   0.0000 15.50000000    09"
	return "ISS (ZARYA)\n" + line1 + "\n" + line2 + "\n"
}

func TestRunOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(freshCatalog()))
	}))
	defer server.Close()

	store := NewStore()
	tleStore := tle.NewStore()
	cache := tle.NewCache(t.TempDir(), 5)
	fetcher := tle.NewFetcher(server.URL, testLogger)

	cfg := pipeline.Config{
		Window: time.Hour,
		Step:   5 * time.Minute,
		MaxAge: 30 * 24 * time.Hour,
	}
	refresher := NewRefresher(fetcher, cache, tleStore, store, cfg, fakeFactory, time.Hour, testLogger)

	snap, err := refresher.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if snap.Features != 1 {
		t.Errorf("features = %d, want 1", snap.Features)
	}
	if len(snap.Skipped) != 0 {
		t.Errorf("skipped = %v, want none", snap.Skipped)
	}

	var doc map[string]any
	if err := json.Unmarshal(snap.JSON, &doc); err != nil {
		t.Fatalf("snapshot JSON invalid: %v", err)
	}
	if doc["type"] != "FeatureCollection" {
		t.Errorf("snapshot type = %v", doc["type"])
	}

	if store.Get() != snap {
		t.Error("snapshot not published to store")
	}
	if ds := tleStore.Get(); ds == nil || len(ds.Satellites) != 1 {
		t.Error("TLE dataset not published to store")
	}
}

// TestRunOnceCacheFallback verifies that a dead source falls back to the
// newest disk snapshot.
func TestRunOnceCacheFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cache := tle.NewCache(t.TempDir(), 5)
	if err := cache.Write([]byte(freshCatalog()), time.Now()); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	store := NewStore()
	refresher := NewRefresher(
		tle.NewFetcher(server.URL, testLogger),
		cache, tle.NewStore(), store,
		pipeline.Config{Window: time.Hour, Step: 5 * time.Minute, MaxAge: 30 * 24 * time.Hour},
		fakeFactory, time.Hour, testLogger,
	)

	snap, err := refresher.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce with cache fallback failed: %v", err)
	}
	if snap.Features != 1 {
		t.Errorf("features = %d, want 1", snap.Features)
	}
}

func TestRunOnceNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	refresher := NewRefresher(
		tle.NewFetcher(server.URL, testLogger),
		nil, tle.NewStore(), NewStore(),
		pipeline.Config{Window: time.Hour, Step: 5 * time.Minute},
		fakeFactory, time.Hour, testLogger,
	)

	if _, err := refresher.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error when no catalog is available, got nil")
	}
}

package artifact

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RadekDuba/starlink/internal/metrics"
	"github.com/RadekDuba/starlink/internal/pipeline"
	"github.com/RadekDuba/starlink/internal/propagation"
	"github.com/RadekDuba/starlink/internal/tle"
)

// Refresher periodically rebuilds the trajectory snapshot from a fresh TLE
// catalog. It backs both modes: one-shot runs call RunOnce, serve mode runs
// Start in the background.
type Refresher struct {
	fetcher  *tle.Fetcher
	cache    *tle.Cache
	tleStore *tle.Store
	store    *Store
	cfg      pipeline.Config
	factory  propagation.Factory
	interval time.Duration
	logger   *slog.Logger
}

// NewRefresher wires a Refresher. The cache may be nil to disable the disk
// fallback; a nil factory selects the SGP4 model.
func NewRefresher(fetcher *tle.Fetcher, cache *tle.Cache, tleStore *tle.Store, store *Store,
	cfg pipeline.Config, factory propagation.Factory, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		cache:    cache,
		tleStore: tleStore,
		store:    store,
		cfg:      cfg,
		factory:  factory,
		interval: interval,
		logger:   logger,
	}
}

// RunOnce fetches the catalog, runs the trajectory batch, and publishes the
// resulting snapshot.
func (r *Refresher) RunOnce(ctx context.Context) (*Snapshot, error) {
	dataset, err := r.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	r.tleStore.Set(dataset)
	metrics.SetDatasetAge(time.Since(dataset.FetchedAt).Seconds())

	cfg := r.cfg
	cfg.Start = time.Now().UTC()
	result := pipeline.New(cfg, r.factory, r.logger).Run(ctx, dataset.Satellites)

	var buf bytes.Buffer
	if err := result.Collection.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}

	snap := &Snapshot{
		JSON:        buf.Bytes(),
		GeneratedAt: cfg.Start,
		Features:    len(result.Collection.Features),
		Skipped:     result.Skipped,
	}
	r.store.Set(snap)
	return snap, nil
}

// Start runs an initial refresh, then rebuilds on the configured interval
// until ctx is cancelled. A failed refresh keeps the previous snapshot.
func (r *Refresher) Start(ctx context.Context) {
	if _, err := r.RunOnce(ctx); err != nil {
		r.logger.Error("initial trajectory refresh failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("artifact refresher stopped")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				r.logger.Warn("trajectory refresh failed, keeping previous snapshot", "error", err)
			}
		}
	}
}

// loadCatalog fetches raw TLE text, writing a disk snapshot on success and
// falling back to the newest cached snapshot when the source is unreachable.
func (r *Refresher) loadCatalog(ctx context.Context) (*tle.Dataset, error) {
	fetchedAt := time.Now().UTC()
	source := r.fetcher.SourceURL()

	data, err := r.fetcher.Fetch(ctx)
	if err != nil {
		if r.cache == nil {
			return nil, fmt.Errorf("fetching TLE catalog: %w", err)
		}
		r.logger.Warn("TLE fetch failed, trying disk cache", "error", err)
		cached, ts, cacheErr := r.cache.LoadLatest()
		if cacheErr != nil {
			return nil, fmt.Errorf("fetching TLE catalog: %w (cache fallback: %v)", err, cacheErr)
		}
		data, fetchedAt, source = cached, ts, "cache"
	} else if r.cache != nil {
		if err := r.cache.Write(data, fetchedAt); err != nil {
			r.logger.Warn("failed to write TLE cache snapshot", "error", err)
		}
	}

	entries, err := tle.Parse(bytes.NewReader(data), r.logger)
	if err != nil {
		return nil, fmt.Errorf("parsing TLE catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable TLE entries from %s", source)
	}

	r.logger.Info("TLE catalog loaded", "source", source, "entries", len(entries))
	return &tle.Dataset{
		Source:     source,
		FetchedAt:  fetchedAt,
		Satellites: entries,
	}, nil
}

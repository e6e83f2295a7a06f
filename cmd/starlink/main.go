package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/RadekDuba/starlink/internal/api"
	"github.com/RadekDuba/starlink/internal/artifact"
	"github.com/RadekDuba/starlink/internal/pipeline"
	"github.com/RadekDuba/starlink/internal/tle"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	tleCfg := loadTLEConfig(logger)
	batchCfg := loadBatchConfig(logger)

	fetcher := tle.NewFetcher(tleCfg.SourceURL, logger, tleCfg.ExtraSourceURLs...)
	cache := tle.NewCache(tleCfg.CacheDir, tleCfg.CacheMaxFiles)
	tleStore := tle.NewStore()
	store := artifact.NewStore()

	pipeCfg := pipeline.Config{
		Window:  batchCfg.Window,
		Step:    batchCfg.Step,
		MaxAge:  tleCfg.MaxAge,
		Workers: batchCfg.Workers,
	}
	refresher := artifact.NewRefresher(fetcher, cache, tleStore, store, pipeCfg, nil, batchCfg.RefreshInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if batchCfg.ListenAddr == "" {
		runOnce(ctx, refresher, store, batchCfg.OutputPath, logger)
		return
	}

	serve(ctx, refresher, store, tleStore, batchCfg.ListenAddr, logger)
}

// runOnce performs a single batch and writes the artifact to disk.
func runOnce(ctx context.Context, refresher *artifact.Refresher, store *artifact.Store, outputPath string, logger *slog.Logger) {
	snap, err := refresher.RunOnce(ctx)
	if err != nil {
		logger.Error("trajectory batch failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, snap.JSON, 0644); err != nil {
		logger.Error("writing output file", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("trajectories written",
		"path", outputPath,
		"features", snap.Features,
		"skipped", len(snap.Skipped),
	)
	for _, name := range snap.Skipped {
		logger.Warn("satellite skipped", "name", name)
	}
}

// serve runs the refresh loop in the background and exposes the artifact,
// health probes, and metrics over HTTP until interrupted.
func serve(ctx context.Context, refresher *artifact.Refresher, store *artifact.Store, tleStore *tle.Store, addr string, logger *slog.Logger) {
	srv := api.NewServer(addr, logger, store, tleStore)

	go refresher.Start(ctx)

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

type tleConfig struct {
	SourceURL       string
	ExtraSourceURLs []string
	CacheDir        string
	CacheMaxFiles   int
	MaxAge          time.Duration
}

type batchConfig struct {
	Window          time.Duration
	Step            time.Duration
	Workers         int
	OutputPath      string
	ListenAddr      string
	RefreshInterval time.Duration
}

func loadTLEConfig(logger *slog.Logger) tleConfig {
	cfg := tleConfig{
		CacheDir:      "/tmp/starlink/tle",
		CacheMaxFiles: 5,
		MaxAge:        tle.DefaultMaxAge,
	}

	if v := os.Getenv("STARLINK_TLE_SOURCE_URL"); v != "" {
		cfg.SourceURL = v
	}

	if v := os.Getenv("STARLINK_TLE_EXTRA_URLS"); v != "" {
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.ExtraSourceURLs = append(cfg.ExtraSourceURLs, u)
			}
		}
	}

	if v := os.Getenv("STARLINK_TLE_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}

	if v := os.Getenv("STARLINK_TLE_MAX_AGE_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARLINK_TLE_MAX_AGE_DAYS value, using default", "value", v, "default", 30)
		} else {
			cfg.MaxAge = time.Duration(n) * 24 * time.Hour
		}
	}

	logger.Info("TLE config",
		"source_url", cfg.SourceURL,
		"extra_urls", cfg.ExtraSourceURLs,
		"cache_dir", cfg.CacheDir,
		"max_age_hours", cfg.MaxAge.Hours(),
	)

	return cfg
}

func loadBatchConfig(logger *slog.Logger) batchConfig {
	cfg := batchConfig{
		Window:          24 * time.Hour,
		Step:            5 * time.Minute,
		Workers:         runtime.NumCPU(),
		OutputPath:      "starlink_trajectories.geojson",
		RefreshInterval: time.Hour,
	}

	if v := os.Getenv("STARLINK_WINDOW_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARLINK_WINDOW_HOURS value, using default", "value", v, "default", 24)
		} else {
			cfg.Window = time.Duration(n) * time.Hour
		}
	}

	if v := os.Getenv("STARLINK_STEP_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARLINK_STEP_MINUTES value, using default", "value", v, "default", 5)
		} else {
			cfg.Step = time.Duration(n) * time.Minute
		}
	}

	if v := os.Getenv("STARLINK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARLINK_WORKERS value, using default", "value", v, "default", cfg.Workers)
		} else {
			cfg.Workers = n
		}
	}

	if v := os.Getenv("STARLINK_OUTPUT"); v != "" {
		cfg.OutputPath = v
	}

	cfg.ListenAddr = os.Getenv("STARLINK_LISTEN_ADDR")

	if v := os.Getenv("STARLINK_REFRESH_INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARLINK_REFRESH_INTERVAL_MINUTES value, using default", "value", v, "default", 60)
		} else {
			cfg.RefreshInterval = time.Duration(n) * time.Minute
		}
	}

	logger.Info("batch config",
		"window_hours", cfg.Window.Hours(),
		"step_minutes", cfg.Step.Minutes(),
		"workers", cfg.Workers,
		"output", cfg.OutputPath,
		"listen_addr", cfg.ListenAddr,
	)

	return cfg
}

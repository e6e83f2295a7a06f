// Package api serves the generated trajectory artifact in serve mode.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/RadekDuba/starlink/internal/artifact"
	"github.com/RadekDuba/starlink/internal/health"
	"github.com/RadekDuba/starlink/internal/metrics"
	"github.com/RadekDuba/starlink/internal/tle"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a configured HTTP server exposing the latest trajectory
// snapshot, health probes, and metrics.
func NewServer(addr string, logger *slog.Logger, store *artifact.Store, tleStore *tle.Store) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /readyz", health.Readyz(func() bool { return store.Get() != nil }))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/trajectories.geojson", trajectoriesHandler(store))
	mux.HandleFunc("GET /api/v1/status", statusHandler(store, tleStore))

	var handler http.Handler = mux
	handler = loggingMiddleware(logger)(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// trajectoriesHandler serves the pre-serialized GeoJSON snapshot.
func trajectoriesHandler(store *artifact.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := store.Get()
		if snap == nil {
			http.Error(w, "no trajectory snapshot generated yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Last-Modified", snap.GeneratedAt.UTC().Format(http.TimeFormat))
		w.Write(snap.JSON)
	}
}

// statusHandler reports snapshot and catalog freshness.
func statusHandler(store *artifact.Store, tleStore *tle.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"snapshot": false,
		}
		if snap := store.Get(); snap != nil {
			status["snapshot"] = true
			status["generated_at"] = snap.GeneratedAt.UTC().Format(time.RFC3339)
			status["features"] = snap.Features
			status["skipped"] = snap.Skipped
		}
		if age := tleStore.AgeSeconds(); age >= 0 {
			status["tle_age_seconds"] = age
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

// probePath returns true for health/readiness probe paths that should not log at INFO.
func probePath(path string) bool {
	return path == "/healthz" || path == "/readyz"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			if probePath(r.URL.Path) {
				level = slog.LevelDebug
			}

			logger.Log(r.Context(), level, "request",
				"component", "api",
				"method", r.Method,
				"path", r.URL.Path,
				"status", strconv.Itoa(sr.statusCode),
				"duration_ms", duration.Milliseconds(),
				"remote_ip", r.RemoteAddr,
			)
		})
	}
}

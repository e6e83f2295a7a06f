// Package metrics exposes Prometheus instrumentation for the trajectory
// batch. In serve mode the registry is scraped from /metrics; in one-shot
// mode the counters still back the end-of-run summary log.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	satellitesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "starlink_satellites_processed_total",
		Help: "Satellites successfully turned into trajectory features.",
	})

	satellitesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "starlink_satellites_skipped_total",
		Help: "Satellites skipped during batch processing.",
	}, []string{"reason"})

	pointsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "starlink_trajectory_points_dropped_total",
		Help: "Individual trajectory points rejected for out-of-range coordinates.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "starlink_batch_duration_seconds",
		Help:    "Wall-clock duration of a full trajectory batch.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	datasetAge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "starlink_tle_dataset_age_seconds",
		Help: "Age of the TLE catalog currently in use.",
	})
)

func init() {
	prometheus.MustRegister(
		satellitesProcessed,
		satellitesSkipped,
		pointsDropped,
		batchDuration,
		datasetAge,
	)
}

// RecordProcessed counts a satellite that produced a feature.
func RecordProcessed() {
	satellitesProcessed.Inc()
}

// RecordSkipped counts a skipped satellite by reason.
func RecordSkipped(reason string) {
	satellitesSkipped.WithLabelValues(reason).Inc()
}

// AddPointsDropped counts geometrically rejected trajectory points.
func AddPointsDropped(n int) {
	if n > 0 {
		pointsDropped.Add(float64(n))
	}
}

// RecordBatchDuration observes one full batch run.
func RecordBatchDuration(d time.Duration) {
	batchDuration.Observe(d.Seconds())
}

// SetDatasetAge updates the TLE catalog age gauge.
func SetDatasetAge(seconds float64) {
	datasetAge.Set(seconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

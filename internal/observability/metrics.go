package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "videotube_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RelationToggles counts like and subscription toggles by kind and outcome.
	RelationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_relation_toggles_total",
		Help: "Total number of relationship toggles by kind and outcome",
	}, []string{"kind", "outcome"})

	// MediaUploads counts uploads to object storage by media class and result.
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "videotube_media_uploads_total",
		Help: "Total number of media uploads by class and result",
	}, []string{"class", "result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

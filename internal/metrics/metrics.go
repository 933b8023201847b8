// Package metrics provides Prometheus metrics for observability.
// Metrics are organized by domain: HTTP requests and content operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "blog_cms"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Content metrics - track post and image lifecycle operations
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "posts_created_total",
			Help:      "Total number of posts created",
		},
	)

	PostsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "posts_published_total",
			Help:      "Total number of posts transitioned to published",
		},
	)

	PostsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "posts_deleted_total",
			Help:      "Total number of posts deleted",
		},
	)

	PostQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "post_queries_total",
			Help:      "Total number of post list queries by whether a search filter was used",
		},
		[]string{"filtered"},
	)

	ImagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "images_processed_total",
			Help:      "Total number of uploaded images by processing result",
		},
		[]string{"result"},
	)

	ImageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "image_processing_duration_seconds",
			Help:      "Image decode/resize/encode duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)

// ObservePostQuery records a list query, labeled by whether any filter was set.
func ObservePostQuery(filtered bool) {
	label := "false"
	if filtered {
		label = "true"
	}
	PostQueries.WithLabelValues(label).Inc()
}

// ObserveImageProcessed records the outcome of one upload pipeline run.
func ObserveImageProcessed(result string, durationSeconds float64) {
	ImagesProcessed.WithLabelValues(result).Inc()
	if result == "success" {
		ImageProcessingDuration.Observe(durationSeconds)
	}
}

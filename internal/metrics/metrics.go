package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_streamer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_streamer_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

// Encoder process metrics
var (
	EncoderInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_encoder_invocations_total",
			Help: "Total number of external encoder process invocations",
		},
		[]string{"tool", "outcome"},
	)

	EncoderInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_streamer_encoder_invocation_duration_seconds",
			Help:    "External encoder process wall time in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		},
		[]string{"tool"},
	)
)

// Pipeline metrics
var (
	PipelineJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_pipeline_jobs_total",
			Help: "Total number of processing jobs by terminal state",
		},
		[]string{"state"},
	)

	PipelineJobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_pipeline_jobs_active",
			Help: "Number of processing jobs currently running",
		},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_streamer_pipeline_stage_duration_seconds",
			Help:    "Processing stage duration in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		},
		[]string{"stage"},
	)

	PipelineStageRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_streamer_pipeline_stage_retries_total",
			Help: "Total number of stage retry attempts",
		},
		[]string{"stage"},
	)
)

// Upload metrics
var (
	UploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_streamer_uploads_total",
			Help: "Total number of accepted video uploads",
		},
	)

	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_streamer_upload_bytes",
			Help:    "Size of accepted video uploads in bytes",
			Buckets: prometheus.ExponentialBuckets(1<<20, 4, 8), // 1MiB .. 16GiB
		},
	)
)

// Memory backpressure metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_memory_usage_ratio",
			Help: "Go heap usage as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_streamer_memory_paused",
			Help: "Whether pipeline work is paused due to memory pressure (0 or 1)",
		},
	)
)

// Package metrics provides Prometheus instrumentation for the video
// streaming server.
//
// All metrics are prefixed with "video_streamer_" to avoid naming
// collisions with other applications.
//
// # Metric Categories
//
// ## HTTP Metrics
//
// Track HTTP request performance and error rates:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Database Metrics
//
// Monitor repository query performance:
//   - DBQueryTotal: Counter of queries by operation and status
//   - DBQueryDuration: Histogram of query duration by operation
//
// ## Encoder Metrics
//
// Track external encoder process invocations:
//   - EncoderInvocationsTotal: Counter by tool (ffmpeg/ffprobe) and outcome
//   - EncoderInvocationDuration: Histogram of process wall time by tool
//
// ## Pipeline Metrics
//
// Track transcoding job lifecycle:
//   - PipelineJobsTotal: Counter of jobs by terminal state
//   - PipelineJobsActive: Gauge of currently running jobs
//   - PipelineStageDuration: Histogram of per-stage duration
//   - PipelineStageRetries: Counter of stage retry attempts
//   - UploadsTotal: Counter of accepted uploads
//   - UploadBytes: Histogram of accepted upload sizes
//
// # Usage
//
// Metrics are registered automatically with the default Prometheus registry
// via promauto at package load. To expose them, mount promhttp.Handler() on
// the metrics endpoint. Call InitializeMetrics once at startup to
// pre-populate expected label combinations so every series is present from
// the first scrape.
package metrics

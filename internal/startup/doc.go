// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - UPLOAD_DIR: Path for stored video uploads (default: /data/uploads)
//   - STREAM_DIR: Path for generated HLS artifacts (default: /data/streams)
//   - DATABASE_DIR: Path to database directory (default: /database)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - FFMPEG_PATH: ffmpeg binary (default: ffmpeg, resolved from PATH)
//   - FFPROBE_PATH: ffprobe binary (default: ffprobe, resolved from PATH)
//   - FFMPEG_TIMEOUT: Per-invocation encoder timeout as Go duration (default: 2h)
//   - PIPELINE_WORKERS: Concurrent processing jobs (default: CPU-derived)
//   - PIPELINE_RETRIES: Extra attempts per failed pipeline stage (default: 0)
//   - PIPELINE_RETRY_BACKOFF: Base delay between attempts (default: 5s)
//   - MAX_UPLOAD_SIZE: Upload size cap in bytes, 0 disables (default: 0)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Directory Setup
//
// The package validates and creates required directories:
//   - Database directory: Required, must be writable
//   - Upload and stream directories: Required, created and write-tested
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogDatabaseInit]: Database initialization timing
//   - [LogEncoderInit]: Encoder setup and ffmpeg/ffprobe availability
//   - [LogPipelineInit]: Processing pipeline configuration
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup

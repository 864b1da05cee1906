package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"video-streamer/internal/metrics"
)

// metricsResponseWriter wraps http.ResponseWriter to capture status code
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{w, http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsConfig holds configuration for the metrics middleware
type MetricsConfig struct {
	// SkipPaths are paths that should not be recorded
	SkipPaths []string
}

// DefaultMetricsConfig returns the default metrics configuration
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		SkipPaths: []string{"/metrics", "/health", "/healthz", "/livez", "/readyz"},
	}
}

// Metrics returns a middleware that records request count and latency per
// method, normalized path and status. The in-flight gauge counts concurrent
// deliveries, which during playback are dominated by segment fetches.
func Metrics(config MetricsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range config.SkipPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			wrapped := newMetricsResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)
			status := strconv.Itoa(wrapped.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// perVideoResources are the API resources addressed by video ID. Each video
// contributes a fresh ID and hundreds of segment paths, so both must
// collapse or the label set grows without bound.
var perVideoResources = map[string]bool{
	"stream":      true,
	"stream-info": true,
	"thumbnail":   true,
	"preview":     true,
	"sprite":      true,
	"video":       true,
}

// normalizePath collapses video IDs and artifact paths into placeholders so
// metric labels stay bounded no matter how many videos exist.
func normalizePath(path string) string {
	parts := strings.Split(path, "/")

	// /api/<resource>/<videoId>[/...]
	if len(parts) > 3 && parts[1] == "api" && perVideoResources[parts[2]] {
		parts[3] = "{videoId}"
		if len(parts) > 4 {
			parts = append(parts[:4], "{path}")
		}
		return strings.Join(parts, "/")
	}

	// Static assets keep only the top-level directory.
	if len(parts) > 2 && parts[1] != "api" {
		return "/" + parts[1] + "/{path}"
	}

	return path
}

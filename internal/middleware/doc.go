// Package middleware provides HTTP middleware for the video streaming server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics
//   - Gzip compression for manifests, JSON and other text payloads
//   - Configurable filtering for segment fetches and health checks
package middleware

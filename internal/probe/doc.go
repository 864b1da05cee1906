// Package probe inspects media files via ffprobe and reports duration,
// dimensions, and codec information.
package probe

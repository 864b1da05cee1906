// Package logging provides the leveled logging used across the video
// streaming server: pipeline stage progress at INFO, retry and cleanup
// conditions at WARN, terminal job failures at ERROR, and full encoder
// argument lists at DEBUG.
//
// The level is configured once per process via the LOG_LEVEL environment
// variable; DEBUG=true forces debug regardless of LOG_LEVEL.
package logging

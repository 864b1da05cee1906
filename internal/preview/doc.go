// Package preview cuts a short re-encoded clip from a source video for
// low-latency hover playback.
package preview

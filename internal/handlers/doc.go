// Package handlers provides HTTP request handlers for the video streaming API.
//
// It includes handlers for:
//   - Video upload and background processing kickoff
//   - HLS manifest and segment delivery
//   - Thumbnails, storyboard sprites, and hover previews
//   - Video listings and per-video info
//   - Health checks and version info
package handlers

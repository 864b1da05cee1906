// Package thumbnail extracts still frames from a source video: a periodic
// sequence sampled every 10 seconds for seek-bar previews, and single
// frames at arbitrary timestamps for ad-hoc requests.
package thumbnail

// Package database manages the SQLite store for the video streaming server.
//
// It tracks uploaded videos and their extracted thumbnails. A video starts
// unprocessed; the processing pipeline flips the processed flag only after
// the complete artifact set (renditions, thumbnails, preview) exists on
// disk, so the flag doubles as the "safe to stream" signal for handlers.
package database

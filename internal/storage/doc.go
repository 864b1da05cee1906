// Package storage defines the on-disk artifact layout shared by the upload
// handler, the transcoding pipeline, and the serving handlers.
//
// The filesystem namespace is partitioned by videoId so concurrent jobs
// never contend on the same directory:
//
//	uploads/<videoId><ext>                      source file
//	streams/<videoId>/stream_<i>/data%03d.ts    segments, ladder index i
//	streams/<videoId>/master.m3u8               master manifest
//	streams/<videoId>/thumbnails/thumb_%03d.jpg periodic thumbnails
//	streams/<videoId>/preview.mp4               hover preview
package storage

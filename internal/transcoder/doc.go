// Package transcoder turns one uploaded source file into the full set of
// HLS renditions for adaptive-bitrate playback.
//
// A fixed quality ladder (1080p down to 360p) drives a single ffmpeg
// invocation: the source video stream is split N ways, each branch scaled
// and encoded at its ladder entry's bitrate, and the audio stream mapped
// once per variant. ffmpeg emits one sub-playlist plus MPEG-TS segments per
// rendition under stream_<i>/ and writes the master playlist itself via its
// variant-stream map.
//
// Ladder order is load-bearing: index 0 is the highest quality, and the
// index maps directly to the encoder's internal stream index, the
// stream_<i> directory name, and the variant map entry.
package transcoder

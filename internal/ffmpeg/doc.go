// Package ffmpeg runs external encoder processes (ffmpeg, ffprobe) and
// resolves their outcome from the exit code.
//
// Every invocation is a scoped resource: the child process is always
// reaped, and cancelling the context kills it. Diagnostic output arrives
// on stderr and is carried inside the returned error so callers can
// surface it to operator logs.
package ffmpeg

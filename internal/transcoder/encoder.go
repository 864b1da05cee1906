package transcoder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-streamer/internal/ffmpeg"
	"video-streamer/internal/logging"
)

const (
	// SegmentSeconds is the HLS target segment duration.
	SegmentSeconds = 10

	// MasterPlaylistName is the filename of the top-level playlist.
	MasterPlaylistName = "master.m3u8"

	// RenditionPlaylistName is the per-variant sub-playlist filename.
	RenditionPlaylistName = "playlist.m3u8"

	// SegmentPattern is the per-variant segment filename pattern.
	SegmentPattern = "data%03d.ts"

	// renditionDirPattern is expanded by ffmpeg's %v variant substitution.
	renditionDirPattern = "stream_%v"
)

// RenditionDirName returns the output subdirectory for ladder index i.
func RenditionDirName(i int) string {
	return fmt.Sprintf("stream_%d", i)
}

// Encoder transcodes a source file into all ladder renditions plus the
// master playlist in a single encoder invocation.
type Encoder struct {
	ffmpegPath string
	runner     ffmpeg.Runner
	ladder     []Quality
}

// New creates an Encoder using the default quality ladder.
func New(ffmpegPath string, runner ffmpeg.Runner) *Encoder {
	return &Encoder{
		ffmpegPath: ffmpegPath,
		runner:     runner,
		ladder:     DefaultLadder(),
	}
}

// Ladder returns the encoder's quality ladder, highest quality first.
func (e *Encoder) Ladder() []Quality {
	ladder := make([]Quality, len(e.ladder))
	copy(ladder, e.ladder)
	return ladder
}

// Encode runs the encoder against inputPath, writing one stream_<i>
// directory per ladder entry plus master.m3u8 into outputDir.
//
// On any failure the partially written rendition directories and manifest
// are removed before the error is returned, so a failed encode never leaves
// output that could be mistaken for a playable artifact set.
func (e *Encoder) Encode(ctx context.Context, inputPath, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	args := buildArgs(inputPath, outputDir, e.ladder)

	if _, err := e.runner.Run(ctx, e.ffmpegPath, args...); err != nil {
		e.removePartialOutput(outputDir)
		return fmt.Errorf("encode renditions: %w", err)
	}

	// Older encoder builds ignore -master_pl_name; assemble the manifest
	// by hand when that happens.
	master := filepath.Join(outputDir, MasterPlaylistName)
	if _, err := os.Stat(master); os.IsNotExist(err) {
		logging.Warn("Encoder did not emit %s, assembling manifest manually", MasterPlaylistName)
		if err := WriteMasterPlaylist(outputDir, e.ladder); err != nil {
			e.removePartialOutput(outputDir)
			return fmt.Errorf("assemble master playlist: %w", err)
		}
	}

	return nil
}

// removePartialOutput deletes rendition directories and the master playlist
// under outputDir. Sibling artifacts (thumbnails, preview) are untouched.
func (e *Encoder) removePartialOutput(outputDir string) {
	for i := range e.ladder {
		dir := filepath.Join(outputDir, RenditionDirName(i))
		if err := os.RemoveAll(dir); err != nil {
			logging.Warn("failed to remove partial rendition %s: %v", dir, err)
		}
	}

	master := filepath.Join(outputDir, MasterPlaylistName)
	if err := os.Remove(master); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove partial manifest %s: %v", master, err)
	}
}

// buildArgs assembles the single-invocation argument list: an N-way
// split-and-scale filter graph, per-rendition video and audio encode
// directives, and the HLS muxer configuration with ffmpeg-generated master
// playlist.
func buildArgs(inputPath, outputDir string, ladder []Quality) []string {
	args := []string{
		"-i", inputPath,
		"-filter_complex", filterGraph(ladder),
	}

	for i, q := range ladder {
		args = append(args,
			"-map", fmt.Sprintf("[v%dout]", i+1),
			fmt.Sprintf("-c:v:%d", i), "libx264",
			fmt.Sprintf("-b:v:%d", i), fmt.Sprintf("%dk", q.Bitrate),
			fmt.Sprintf("-maxrate:v:%d", i), fmt.Sprintf("%dk", q.MaxRate),
			fmt.Sprintf("-bufsize:v:%d", i), fmt.Sprintf("%dk", q.BufSize),
		)
	}

	for i, q := range ladder {
		args = append(args,
			"-map", "a:0",
			"-c:a", "aac",
			fmt.Sprintf("-b:a:%d", i), fmt.Sprintf("%dk", q.AudioBitrate),
			"-ac", fmt.Sprintf("%d", q.AudioChannels),
		)
	}

	args = append(args,
		"-f", "hls",
		"-hls_time", fmt.Sprintf("%d", SegmentSeconds),
		"-hls_playlist_type", "vod",
		"-hls_segment_type", "mpegts",
		"-hls_flags", "independent_segments",
		"-hls_segment_filename", filepath.Join(outputDir, renditionDirPattern, SegmentPattern),
		"-master_pl_name", MasterPlaylistName,
		"-var_stream_map", varStreamMap(ladder),
		filepath.Join(outputDir, renditionDirPattern, RenditionPlaylistName),
	)

	return args
}

// filterGraph splits the source video N ways and scales each branch to its
// ladder entry's exact resolution.
func filterGraph(ladder []Quality) string {
	var b strings.Builder

	b.WriteString("[0:v]split=")
	b.WriteString(fmt.Sprintf("%d", len(ladder)))
	for i := range ladder {
		b.WriteString(fmt.Sprintf("[v%d]", i+1))
	}

	for i, q := range ladder {
		b.WriteString(fmt.Sprintf("; [v%d]scale=w=%d:h=%d[v%dout]", i+1, q.Width, q.Height, i+1))
	}

	return b.String()
}

// varStreamMap pairs each video stream with its audio stream in ladder
// order ("v:0,a:0 v:1,a:1 ...").
func varStreamMap(ladder []Quality) string {
	pairs := make([]string, len(ladder))
	for i := range ladder {
		pairs[i] = fmt.Sprintf("v:%d,a:%d", i, i)
	}
	return strings.Join(pairs, " ")
}

package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"video-streamer/internal/ffmpeg"
)

const (
	// DurationSeconds is the fixed clip length.
	DurationSeconds = 10

	// FileName is the deterministic per-video preview filename.
	FileName = "preview.mp4"

	videoBitrate = "1000k"
	audioBitrate = "128k"
)

// Generator produces hover-preview clips.
type Generator struct {
	ffmpegPath string
	runner     ffmpeg.Runner
}

// New creates a Generator.
func New(ffmpegPath string, runner ffmpeg.Runner) *Generator {
	return &Generator{ffmpegPath: ffmpegPath, runner: runner}
}

// Generate extracts a 10-second clip starting at startOffset seconds,
// re-encoded so the clip opens on a clean keyframe, and writes it to
// outDir/preview.mp4. Regeneration overwrites the prior clip, so repeat
// invocations for the same video yield exactly one file.
func (g *Generator) Generate(ctx context.Context, inputPath, outDir string, startOffset float64) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}

	out := filepath.Join(outDir, FileName)

	args := []string{
		"-ss", fmt.Sprintf("%g", startOffset),
		"-i", inputPath,
		"-t", fmt.Sprintf("%d", DurationSeconds),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-b:v", videoBitrate,
		"-b:a", audioBitrate,
		"-f", "mp4",
		"-y", out,
	}

	if _, err := g.runner.Run(ctx, g.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("generate preview at %gs: %w", startOffset, err)
	}

	return out, nil
}

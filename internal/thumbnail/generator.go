package thumbnail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"video-streamer/internal/ffmpeg"
)

const (
	// IntervalSeconds is the sampling interval for periodic extraction.
	IntervalSeconds = 10

	// Width and Height are the fixed periodic thumbnail dimensions.
	Width  = 160
	Height = 90

	// quality is the encoder's JPEG quality factor (2 = near lossless).
	quality = "2"

	// filePattern names the periodic stills; index starts at 1.
	filePattern = "thumb_%03d.jpg"
)

// Generator extracts still frames via the external encoder.
type Generator struct {
	ffmpegPath string
	runner     ffmpeg.Runner
}

// New creates a Generator.
func New(ffmpegPath string, runner ffmpeg.Runner) *Generator {
	return &Generator{ffmpegPath: ffmpegPath, runner: runner}
}

// Generate samples one frame every 10 seconds across the whole source into
// outDir as thumb_001.jpg, thumb_002.jpg, ... at 160x90, then returns the
// produced filenames in order.
//
// The fps filter emits the first frame at t=0 and one frame per full
// interval after that, so a 60-second source yields six stills.
func (g *Generator) Generate(ctx context.Context, inputPath, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create thumbnail dir: %w", err)
	}

	args := []string{
		"-i", inputPath,
		"-vf", fmt.Sprintf("fps=1/%d", IntervalSeconds),
		"-q:v", quality,
		"-s", fmt.Sprintf("%dx%d", Width, Height),
		filepath.Join(outDir, filePattern),
	}

	if _, err := g.runner.Run(ctx, g.ffmpegPath, args...); err != nil {
		return nil, fmt.Errorf("generate thumbnails: %w", err)
	}

	return Discover(outDir), nil
}

// Discover lists the periodic thumbnails present in dir by probing for
// sequential filenames starting at index 1. The scan stops at the first
// missing index even if later indices exist: sampling never produces gaps,
// so a gap marks the end of the trustworthy sequence.
func Discover(dir string) []string {
	var names []string
	for i := 1; ; i++ {
		name := fmt.Sprintf(filePattern, i)
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			break
		}
		names = append(names, name)
	}
	return names
}

// ExtractFrame seeks to offset seconds and extracts exactly one frame at
// source resolution, returning the JPEG bytes. The frame is written to a
// scratch file under workDir and removed before returning; it is up to the
// caller to persist the bytes if needed.
func (g *Generator) ExtractFrame(ctx context.Context, inputPath string, offset float64, workDir string) ([]byte, error) {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("create thumbnail dir: %w", err)
	}

	out := filepath.Join(workDir, fmt.Sprintf("frame_%s.jpg", uuid.NewString()))
	defer os.Remove(out)

	args := []string{
		"-ss", fmt.Sprintf("%g", offset),
		"-i", inputPath,
		"-frames:v", "1",
		"-q:v", quality,
		"-f", "image2",
		"-y", out,
	}

	if _, err := g.runner.Run(ctx, g.ffmpegPath, args...); err != nil {
		return nil, fmt.Errorf("extract frame at %gs: %w", offset, err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read extracted frame: %w", err)
	}

	return data, nil
}

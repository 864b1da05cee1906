package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"video-streamer/internal/ffmpeg"
)

// Info describes a probed media file.
type Info struct {
	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	VideoCodec string  `json:"videoCodec"`
	AudioCodec string  `json:"audioCodec"`
}

// Prober wraps ffprobe.
type Prober struct {
	ffprobePath string
	runner      ffmpeg.Runner
}

// New creates a Prober.
func New(ffprobePath string, runner ffmpeg.Runner) *Prober {
	return &Prober{ffprobePath: ffprobePath, runner: runner}
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width,omitempty"`
		Height    int    `json:"height,omitempty"`
		Duration  string `json:"duration,omitempty"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe against path and decodes its JSON report.
func (p *Prober) Probe(ctx context.Context, path string) (*Info, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	out, err := p.runner.Run(ctx, p.ffprobePath, args...)
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var report ffprobeOutput
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := &Info{}

	if report.Format.Duration != "" {
		if d, err := strconv.ParseFloat(report.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}

	for _, stream := range report.Streams {
		switch {
		case stream.CodecType == "video" && info.Width == 0:
			info.Width = stream.Width
			info.Height = stream.Height
			info.VideoCodec = stream.CodecName
			if info.Duration == 0 && stream.Duration != "" {
				if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
					info.Duration = d
				}
			}
		case stream.CodecType == "audio" && info.AudioCodec == "":
			info.AudioCodec = stream.CodecName
		}
	}

	return info, nil
}

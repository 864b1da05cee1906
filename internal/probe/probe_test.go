package probe

import (
	"context"
	"strings"
	"testing"

	"video-streamer/internal/ffmpeg"
)

type fakeRunner struct {
	args []string
	out  []byte
	err  error
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.args = args
	return f.out, f.err
}

func TestProbe(t *testing.T) {
	report := `{
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080},
			{"codec_type": "audio", "codec_name": "aac"}
		],
		"format": {"duration": "60.042000"}
	}`

	runner := &fakeRunner{out: []byte(report)}
	prober := New("ffprobe", runner)

	info, err := prober.Probe(context.Background(), "/uploads/in.mp4")
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	if info.Duration < 60.0 || info.Duration > 60.1 {
		t.Errorf("Expected duration ~60.042, got %f", info.Duration)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("Expected 1920x1080, got %dx%d", info.Width, info.Height)
	}
	if info.VideoCodec != "h264" {
		t.Errorf("Expected h264, got %s", info.VideoCodec)
	}
	if info.AudioCodec != "aac" {
		t.Errorf("Expected aac, got %s", info.AudioCodec)
	}

	joined := strings.Join(runner.args, " ")
	if !strings.Contains(joined, "-print_format json") {
		t.Errorf("Expected JSON output flag in args: %s", joined)
	}
}

func TestProbeStreamDurationFallback(t *testing.T) {
	report := `{
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 640, "height": 360, "duration": "12.5"}
		],
		"format": {}
	}`

	prober := New("ffprobe", &fakeRunner{out: []byte(report)})
	info, err := prober.Probe(context.Background(), "/uploads/in.mp4")
	if err != nil {
		t.Fatal(err)
	}

	if info.Duration != 12.5 {
		t.Errorf("Expected stream duration fallback 12.5, got %f", info.Duration)
	}
}

func TestProbeInvalidJSON(t *testing.T) {
	prober := New("ffprobe", &fakeRunner{out: []byte("not json")})
	if _, err := prober.Probe(context.Background(), "/uploads/in.mp4"); err == nil {
		t.Fatal("Expected error for unparseable report")
	}
}

func TestProbeRunnerError(t *testing.T) {
	prober := New("ffprobe", &fakeRunner{err: &ffmpeg.ExitError{Name: "ffprobe", Code: 1}})
	if _, err := prober.Probe(context.Background(), "/does/not/exist.mp4"); err == nil {
		t.Fatal("Expected error when ffprobe fails")
	}
}

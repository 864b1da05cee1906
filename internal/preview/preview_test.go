package preview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"video-streamer/internal/ffmpeg"
)

type fakeRunner struct {
	calls int
	args  []string
	fn    func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls++
	f.args = args
	if f.fn != nil {
		return f.fn(ctx, name, args...)
	}
	return nil, nil
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "streams", "vid1")

	runner := &fakeRunner{
		fn: func(_ context.Context, _ string, args ...string) ([]byte, error) {
			return nil, os.WriteFile(args[len(args)-1], []byte("mp4"), 0644)
		},
	}

	gen := New("ffmpeg", runner)
	path, err := gen.Generate(context.Background(), "/uploads/in.mp4", dir, 0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if path != filepath.Join(dir, "preview.mp4") {
		t.Errorf("Expected deterministic preview path, got %q", path)
	}

	joined := strings.Join(runner.args, " ")
	for _, frag := range []string{"-ss 0", "-t 10", "-c:v libx264", "-c:a aac", "-b:v 1000k", "-b:a 128k", "-f mp4"} {
		if !strings.Contains(joined, frag) {
			t.Errorf("Args missing %q: %s", frag, joined)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	dir := t.TempDir()

	runner := &fakeRunner{
		fn: func(_ context.Context, _ string, args ...string) ([]byte, error) {
			return nil, os.WriteFile(args[len(args)-1], []byte("mp4"), 0644)
		},
	}

	gen := New("ffmpeg", runner)

	first, err := gen.Generate(context.Background(), "/uploads/in.mp4", dir, 30)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Generate(context.Background(), "/uploads/in.mp4", dir, 30)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("Repeat generation must reuse the same path: %q vs %q", first, second)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected exactly one preview file, found %d", len(entries))
	}
}

func TestGenerateEncoderFailure(t *testing.T) {
	runner := &fakeRunner{
		fn: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return nil, &ffmpeg.ExitError{Name: "ffmpeg", Code: 1, Output: "no audio stream"}
		},
	}

	gen := New("ffmpeg", runner)
	if _, err := gen.Generate(context.Background(), "/uploads/in.mp4", t.TempDir(), 0); err == nil {
		t.Fatal("Expected error when encoder exits non-zero")
	}
}

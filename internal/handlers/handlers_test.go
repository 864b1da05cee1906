package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"video-streamer/internal/database"
	"video-streamer/internal/pipeline"
	"video-streamer/internal/preview"
	"video-streamer/internal/probe"
	"video-streamer/internal/startup"
	"video-streamer/internal/storage"
	"video-streamer/internal/thumbnail"
	"video-streamer/internal/transcoder"
)

// nopRunner stands in for ffmpeg: every invocation succeeds and produces no
// output files.
type nopRunner struct{}

func (nopRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return nil, nil
}

type testEnv struct {
	handlers *Handlers
	router   *mux.Router
	db       *database.Database
	layout   storage.Layout
	pipeline *pipeline.Pipeline
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	config := &startup.Config{
		UploadDir: filepath.Join(root, "uploads"),
		StreamDir: filepath.Join(root, "streams"),
	}
	layout := storage.NewLayout(config.UploadDir, config.StreamDir)
	if err := layout.EnsureRoots(); err != nil {
		t.Fatal(err)
	}

	db, err := database.New(context.Background(), filepath.Join(root, "test.db"))
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	runner := nopRunner{}
	thumbs := thumbnail.New("ffmpeg", runner)
	pipe := pipeline.New(
		transcoder.New("ffmpeg", runner),
		thumbs,
		preview.New("ffmpeg", runner),
		layout, db, pipeline.Options{},
	)
	t.Cleanup(pipe.Wait)

	h := New(db, pipe, thumbs, probe.New("ffprobe", runner), layout, config)

	router := mux.NewRouter()
	router.HandleFunc("/api/upload", h.UploadVideo).Methods("POST")
	router.HandleFunc("/api/stream/{videoId}/{path:.*}", h.StreamFile).Methods("GET")
	router.HandleFunc("/api/thumbnail/{videoId}/{filename}", h.GetThumbnail).Methods("GET")
	router.HandleFunc("/api/thumbnail/{videoId}", h.ExtractThumbnail).Methods("GET")
	router.HandleFunc("/api/preview/{videoId}", h.GetPreview).Methods("GET")
	router.HandleFunc("/api/sprite/{videoId}", h.GetSprite).Methods("GET")
	router.HandleFunc("/api/video/{videoId}/info", h.GetVideoInfo).Methods("GET")
	router.HandleFunc("/api/videos", h.ListVideos).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	router.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	router.HandleFunc("/version", h.GetVersion).Methods("GET")

	return &testEnv{handlers: h, router: router, db: db, layout: layout, pipeline: pipe}
}

func (e *testEnv) do(t *testing.T, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadVideo(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartUpload(t, "video", "holiday clip.mp4", []byte("fake video data"))
	rec := env.do(t, "POST", "/api/upload", body, contentType)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		StreamURL string `json:"streamUrl"`
		VideoInfo struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Size int64  `json:"size"`
		} `json:"videoInfo"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.VideoInfo.ID == "" {
		t.Fatal("Expected a video ID")
	}
	if resp.VideoInfo.Name != "holiday_clip" {
		t.Errorf("Name = %q, want holiday_clip", resp.VideoInfo.Name)
	}
	if resp.VideoInfo.Size != int64(len("fake video data")) {
		t.Errorf("Size = %d, want %d", resp.VideoInfo.Size, len("fake video data"))
	}
	want := "/api/stream/" + resp.VideoInfo.ID + "/master.m3u8"
	if resp.StreamURL != want {
		t.Errorf("StreamURL = %q, want %q", resp.StreamURL, want)
	}

	// Upload is on disk and registered as unprocessed.
	video, err := env.db.GetVideo(context.Background(), resp.VideoInfo.ID)
	if err != nil {
		t.Fatalf("GetVideo() error = %v", err)
	}
	if video.OriginalFilename != "holiday_clip.mp4" {
		t.Errorf("OriginalFilename = %q", video.OriginalFilename)
	}
}

func TestUploadVideoMissingFile(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartUpload(t, "other", "clip.mp4", []byte("data"))
	rec := env.do(t, "POST", "/api/upload", body, contentType)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestUploadVideoUnsupportedFormat(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartUpload(t, "video", "notes.txt", []byte("text"))
	rec := env.do(t, "POST", "/api/upload", body, contentType)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("Status = %d, want 415", rec.Code)
	}
}

func TestStreamManifestGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.db.AddVideo(ctx, "vid1", "Clip", "clip.mp4"); err != nil {
		t.Fatal(err)
	}

	// Manifest exists on disk but the video is not processed yet.
	if err := os.MkdirAll(env.layout.VideoDir("vid1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.layout.MasterPlaylistPath("vid1"), []byte("#EXTM3U\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, "GET", "/api/stream/vid1/master.m3u8", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unprocessed manifest status = %d, want 404", rec.Code)
	}

	if err := env.db.MarkProcessed(ctx, "vid1"); err != nil {
		t.Fatal(err)
	}

	rec = env.do(t, "GET", "/api/stream/vid1/master.m3u8", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Processed manifest status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-mpegURL" {
		t.Errorf("Content-Type = %q, want application/x-mpegURL", ct)
	}
}

func TestHandlersServeInjectedLayout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.db.AddVideo(ctx, "vid1", "Clip", "clip.mp4"); err != nil {
		t.Fatal(err)
	}
	if err := env.db.MarkProcessed(ctx, "vid1"); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(env.layout.VideoDir("vid1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.layout.MasterPlaylistPath("vid1"), []byte("#EXTM3U\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Construct handlers with config dirs pointing somewhere else entirely;
	// serving must follow the injected layout the pipeline writes through,
	// not paths re-derived from config.
	other := &startup.Config{
		UploadDir: filepath.Join(t.TempDir(), "elsewhere-uploads"),
		StreamDir: filepath.Join(t.TempDir(), "elsewhere-streams"),
	}
	h := New(env.db, env.pipeline, env.handlers.thumbs, env.handlers.prober, env.layout, other)

	router := mux.NewRouter()
	router.HandleFunc("/api/stream/{videoId}/{path:.*}", h.StreamFile).Methods("GET")

	req := httptest.NewRequest("GET", "/api/stream/vid1/master.m3u8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Manifest status = %d, want 200", rec.Code)
	}
}

func TestStreamSegmentServedWithoutGating(t *testing.T) {
	env := newTestEnv(t)

	// Segments are fetched by players that already hold a manifest; they
	// are served straight from disk.
	segDir := env.layout.RenditionDir("vid1", 0)
	if err := os.MkdirAll(segDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(segDir, "data000.ts"), []byte("segment"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, "GET", "/api/stream/vid1/stream_0/data000.ts", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Segment status = %d, want 200", rec.Code)
	}
}

func TestStreamMissingFile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/stream/vid1/stream_0/data999.ts", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestGetThumbnail(t *testing.T) {
	env := newTestEnv(t)

	thumbDir := env.layout.ThumbnailDir("vid1")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(thumbDir, "thumb_001.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, "GET", "/api/thumbnail/vid1/thumb_001.jpg", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}

	rec = env.do(t, "GET", "/api/thumbnail/vid1/thumb_999.jpg", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Missing thumbnail status = %d, want 404", rec.Code)
	}
}

func TestExtractThumbnailValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/thumbnail/vid1?time=abc", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Invalid offset status = %d, want 400", rec.Code)
	}

	rec = env.do(t, "GET", "/api/thumbnail/vid1?time=5", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown video status = %d, want 404", rec.Code)
	}
}

func TestGetPreviewAndSpriteNotFound(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, "GET", "/api/preview/vid1", nil, ""); rec.Code != http.StatusNotFound {
		t.Errorf("Preview status = %d, want 404", rec.Code)
	}
	if rec := env.do(t, "GET", "/api/sprite/vid1", nil, ""); rec.Code != http.StatusNotFound {
		t.Errorf("Sprite status = %d, want 404", rec.Code)
	}
}

func TestGetPreview(t *testing.T) {
	env := newTestEnv(t)

	if err := os.MkdirAll(env.layout.VideoDir("vid1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env.layout.PreviewPath("vid1"), []byte("mp4"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, "GET", "/api/preview/vid1", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", ct)
	}
}

func TestListVideos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.db.AddVideo(ctx, "vid1", "First", "a.mp4"); err != nil {
		t.Fatal(err)
	}
	if err := env.db.AddVideo(ctx, "vid2", "Second", "b.mp4"); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, "GET", "/api/videos", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var videos []database.Video
	if err := json.Unmarshal(rec.Body.Bytes(), &videos); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("Expected 2 videos, got %d", len(videos))
	}
}

func TestGetVideoInfo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.db.AddVideo(ctx, "vid1", "Clip", "clip.mp4"); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, "GET", "/api/video/vid1/info", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var resp struct {
		Video     database.Video `json:"video"`
		StreamURL string         `json:"streamUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Video.ID != "vid1" {
		t.Errorf("Video ID = %q, want vid1", resp.Video.ID)
	}
	if resp.StreamURL != "/api/stream/vid1/master.m3u8" {
		t.Errorf("StreamURL = %q", resp.StreamURL)
	}

	rec = env.do(t, "GET", "/api/video/missing/info", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Missing video status = %d, want 404", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, "GET", "/health", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("Health status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, "GET", "/livez", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("Liveness status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, "GET", "/readyz", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("Readiness status = %d, want 200", rec.Code)
	}
}

func TestGetVersion(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/version", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var info startup.BuildInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if info.Version == "" {
		t.Error("Expected a version string")
	}
}

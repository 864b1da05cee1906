package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-streamer/internal/preview"
	"video-streamer/internal/transcoder"
)

// SourceMedia is an immutable reference to an uploaded file on durable
// storage. It is created once at upload time and never mutated.
type SourceMedia struct {
	VideoID      string
	Path         string
	OriginalName string
}

// Layout maps videoIds to artifact paths under fixed upload and stream
// roots.
type Layout struct {
	uploadDir string
	streamDir string
}

// NewLayout creates a Layout rooted at the given directories.
func NewLayout(uploadDir, streamDir string) Layout {
	return Layout{uploadDir: uploadDir, streamDir: streamDir}
}

// EnsureRoots creates both root directories if absent.
func (l Layout) EnsureRoots() error {
	for _, dir := range []string{l.uploadDir, l.streamDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// UploadDir returns the upload root.
func (l Layout) UploadDir() string {
	return l.uploadDir
}

// UploadPath returns the stored source path for a videoId with the given
// extension (original filename extension, e.g. ".mp4").
func (l Layout) UploadPath(videoID, ext string) string {
	return filepath.Join(l.uploadDir, videoID+ext)
}

// VideoDir returns the per-video artifact root streams/<videoId>.
func (l Layout) VideoDir(videoID string) string {
	return filepath.Join(l.streamDir, videoID)
}

// RenditionDir returns streams/<videoId>/stream_<i>.
func (l Layout) RenditionDir(videoID string, i int) string {
	return filepath.Join(l.VideoDir(videoID), transcoder.RenditionDirName(i))
}

// MasterPlaylistPath returns streams/<videoId>/master.m3u8.
func (l Layout) MasterPlaylistPath(videoID string) string {
	return filepath.Join(l.VideoDir(videoID), transcoder.MasterPlaylistName)
}

// ThumbnailDir returns streams/<videoId>/thumbnails.
func (l Layout) ThumbnailDir(videoID string) string {
	return filepath.Join(l.VideoDir(videoID), "thumbnails")
}

// PreviewPath returns streams/<videoId>/preview.mp4.
func (l Layout) PreviewPath(videoID string) string {
	return filepath.Join(l.VideoDir(videoID), preview.FileName)
}

// StreamFile resolves a client-supplied relative path (e.g. "master.m3u8"
// or "stream_0/data001.ts") inside the video's artifact directory,
// rejecting any path that would escape it.
func (l Layout) StreamFile(videoID, rel string) (string, error) {
	return l.safeJoin(l.VideoDir(videoID), rel)
}

// ThumbnailFile resolves a thumbnail filename inside the video's thumbnail
// directory, rejecting traversal.
func (l Layout) ThumbnailFile(videoID, filename string) (string, error) {
	return l.safeJoin(l.ThumbnailDir(videoID), filename)
}

func (l Layout) safeJoin(root, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}

	joined := filepath.Join(root, filepath.Clean("/"+rel))
	if joined != root && !strings.HasPrefix(joined, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes video directory", rel)
	}

	return joined, nil
}

// SanitizeFilename collapses whitespace runs in an original filename to
// underscores so stored names are shell and URL friendly.
func SanitizeFilename(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

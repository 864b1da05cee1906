package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"video-streamer/internal/logging"
)

// SaveUpload persists an uploaded file under the upload root and returns
// the SourceMedia referencing it plus the number of bytes written. The
// videoId is an opaque UUID; the stored filename keeps only the original
// extension so the source path is derivable from the id.
func (l Layout) SaveUpload(r io.Reader, originalName string) (SourceMedia, int64, error) {
	if err := os.MkdirAll(l.uploadDir, 0755); err != nil {
		return SourceMedia{}, 0, fmt.Errorf("create upload dir: %w", err)
	}

	videoID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(originalName))
	path := l.UploadPath(videoID, ext)

	f, err := os.Create(path)
	if err != nil {
		return SourceMedia{}, 0, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logging.Warn("failed to remove partial upload %s: %v", path, rmErr)
		}
		return SourceMedia{}, 0, fmt.Errorf("write upload: %w", err)
	}

	return SourceMedia{
		VideoID:      videoID,
		Path:         path,
		OriginalName: SanitizeFilename(originalName),
	}, written, nil
}

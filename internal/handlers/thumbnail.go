package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"video-streamer/internal/logging"
	"video-streamer/internal/sprite"
)

// GetThumbnail serves one stored thumbnail frame for a video.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]
	filename := vars["filename"]

	fullPath, err := h.layout.ThumbnailFile(videoID, filename)
	if err != nil {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		http.Error(w, "Thumbnail not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, fullPath)
}

// ExtractThumbnail extracts a single frame at the requested time offset
// straight from the uploaded source. The frame is returned to the caller and
// not added to the stored thumbnail set.
func (h *Handlers) ExtractThumbnail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]

	offset, err := strconv.ParseFloat(r.URL.Query().Get("time"), 64)
	if err != nil || offset < 0 {
		http.Error(w, "Invalid time offset", http.StatusBadRequest)
		return
	}

	src, err := h.findUpload(videoID)
	if err != nil {
		http.Error(w, "Video not found", http.StatusNotFound)
		return
	}

	frame, err := h.thumbs.ExtractFrame(r.Context(), src, offset, os.TempDir())
	if err != nil {
		logging.Error("Frame extraction failed for %s at %gs: %v", videoID, offset, err)
		http.Error(w, "Failed to extract frame", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := w.Write(frame); err != nil {
		logging.Error("Failed to write frame response: %v", err)
	}
}

// GetSprite serves the storyboard sheet composed from a video's thumbnails.
func (h *Handlers) GetSprite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]

	fullPath := filepath.Join(h.layout.ThumbnailDir(videoID), sprite.FileName)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		http.Error(w, "Sprite not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, fullPath)
}

// findUpload locates the stored source file for a video. The upload keeps
// its original extension, so glob for the ID.
func (h *Handlers) findUpload(videoID string) (string, error) {
	if strings.ContainsAny(videoID, `*?[]/\`) {
		return "", os.ErrNotExist
	}
	matches, err := filepath.Glob(h.layout.UploadPath(videoID, ".*"))
	if err != nil || len(matches) == 0 {
		return "", os.ErrNotExist
	}
	return matches[0], nil
}

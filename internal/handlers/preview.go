package handlers

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// GetPreview serves the short hover-preview clip for a video.
func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]

	fullPath := h.layout.PreviewPath(videoID)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		http.Error(w, "Preview not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, fullPath)
}

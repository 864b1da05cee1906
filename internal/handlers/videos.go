package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"video-streamer/internal/database"
	"video-streamer/internal/logging"
)

// ListVideos returns all uploaded videos, newest first.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.db.ListVideos(r.Context())
	if err != nil {
		logging.Error("Failed to list videos: %v", err)
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, videos)
}

// GetVideoInfo returns one video's metadata, its stored thumbnails, and the
// source duration when the upload is still present to probe.
func (h *Handlers) GetVideoInfo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]

	video, err := h.db.GetVideo(r.Context(), videoID)
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Video not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Failed to get video %s: %v", videoID, err)
		http.Error(w, "Failed to get video", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"video":     video,
		"streamUrl": fmt.Sprintf("/api/stream/%s/master.m3u8", video.ID),
	}

	if src, err := h.findUpload(videoID); err == nil {
		if info, err := h.prober.Probe(r.Context(), src); err == nil {
			response["duration"] = info.Duration
			response["width"] = info.Width
			response["height"] = info.Height
		} else {
			logging.Warn("Probe failed for %s: %v", videoID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

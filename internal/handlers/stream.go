package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"video-streamer/internal/database"
	"video-streamer/internal/logging"
	"video-streamer/internal/mediatypes"
	"video-streamer/internal/transcoder"
)

// StreamFile serves HLS artifacts for a video: the master manifest, the
// per-rendition playlists and the media segments. Manifests are withheld
// until the pipeline has marked the video processed, so players never see
// a partially written rendition set.
func (h *Handlers) StreamFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]
	rel := vars["path"]

	fullPath, err := h.layout.StreamFile(videoID, rel)
	if err != nil {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	if strings.HasSuffix(rel, ".m3u8") {
		video, err := h.db.GetVideo(r.Context(), videoID)
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "Video not found", http.StatusNotFound)
			return
		}
		if err != nil {
			logging.Error("Stream lookup failed for %s: %v", videoID, err)
			http.Error(w, "Failed to look up video", http.StatusInternalServerError)
			return
		}
		if !video.Processed {
			http.Error(w, "Video not ready", http.StatusNotFound)
			return
		}
	}

	// The mime package does not know HLS extensions.
	if ext := strings.ToLower(filepath.Ext(rel)); ext != "" {
		w.Header().Set("Content-Type", mediatypes.GetMimeType(ext))
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, fullPath)
}

// GetStreamInfo reports the quality ladder behind the master manifest.
func (h *Handlers) GetStreamInfo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["videoId"]

	video, err := h.db.GetVideo(r.Context(), videoID)
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, "Video not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to look up video", http.StatusInternalServerError)
		return
	}

	type rendition struct {
		Name       string `json:"name"`
		Resolution string `json:"resolution"`
		Bandwidth  int    `json:"bandwidth"`
		Playlist   string `json:"playlist"`
	}

	ladder := transcoder.DefaultLadder()
	renditions := make([]rendition, 0, len(ladder))
	for i, q := range ladder {
		renditions = append(renditions, rendition{
			Name:       q.Name,
			Resolution: q.Resolution(),
			Bandwidth:  q.Bandwidth(),
			Playlist:   transcoder.RenditionDirName(i) + "/" + transcoder.RenditionPlaylistName,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"id":         video.ID,
		"processed":  video.Processed,
		"renditions": renditions,
	})
}

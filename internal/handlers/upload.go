package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"video-streamer/internal/logging"
	"video-streamer/internal/mediatypes"
	"video-streamer/internal/metrics"
	"video-streamer/internal/storage"
)

// UploadVideo accepts a multipart upload in the "video" field, registers the
// video and kicks off background processing. It responds as soon as the
// source file is on disk; renditions become available once the pipeline
// marks the video processed.
func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeJSONError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	originalName := storage.SanitizeFilename(header.Filename)
	if originalName == "" {
		writeJSONError(w, "Missing filename", http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !mediatypes.IsVideo(ext) {
		writeJSONError(w, "Unsupported video format", http.StatusUnsupportedMediaType)
		return
	}

	src, size, err := h.layout.SaveUpload(file, originalName)
	if err != nil {
		logging.Error("Failed to store upload %s: %v", originalName, err)
		writeJSONError(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}

	name := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	if err := h.db.AddVideo(r.Context(), src.VideoID, name, originalName); err != nil {
		logging.Error("Failed to register upload %s: %v", src.VideoID, err)
		writeJSONError(w, "Failed to register upload", http.StatusInternalServerError)
		return
	}

	metrics.UploadsTotal.Inc()
	metrics.UploadBytes.Observe(float64(size))
	logging.Info("Accepted upload %s (%s, %d bytes)", src.VideoID, originalName, size)

	h.pipeline.Launch(src)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]interface{}{
		"success": true,
		"videoInfo": map[string]interface{}{
			"id":   src.VideoID,
			"name": name,
			"size": size,
		},
		"streamUrl": fmt.Sprintf("/api/stream/%s/master.m3u8", src.VideoID),
	})
}

package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
)

// StreamVideo proxies a video object from the bucket to the client so that
// playback works without exposing bucket URLs.
func (h *Handlers) StreamVideo(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if !mediatypes.AllowedName(name, mediatypes.CategoryVideos) {
		writeJSONError(w, "not a video name", http.StatusBadRequest)
		return
	}

	reader, contentType, err := h.videos.Open(r.Context(), name)
	if err != nil {
		logging.Error("failed to open video %s: %v", name, err)
		writeJSONError(w, "video not available", http.StatusBadGateway)
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logging.Warn("failed to close video reader for %s: %v", name, err)
		}
	}()

	if contentType == "" {
		contentType = mediatypes.GetMimeType(name)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))

	if _, err := io.Copy(w, reader); err != nil {
		// The client usually just closed the player.
		logging.Debug("video stream for %s ended early: %v", name, err)
	}
}

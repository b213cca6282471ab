package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
)

// GetThumbnail serves the cached thumbnail for a video, generating it on
// demand. Failures are answered with the placeholder image rather than an
// error so galleries never show broken tiles.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if name == "placeholder.jpg" {
		h.serveThumbnail(w, r, h.resolver.Placeholder())
		return
	}

	if !mediatypes.AllowedName(name, mediatypes.CategoryVideos) {
		writeJSONError(w, "not a video name", http.StatusBadRequest)
		return
	}

	item := gallery.Item{Name: name, URL: h.videos.SourceURL(name)}
	path := h.resolver.Resolve(r.Context(), item)
	h.serveThumbnail(w, r, path)
}

func (h *Handlers) serveThumbnail(w http.ResponseWriter, r *http.Request, path string) {
	logging.Debug("serving thumbnail %s", path)
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

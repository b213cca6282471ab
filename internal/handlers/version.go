package handlers

import (
	"net/http"

	"birdcam-gallery/internal/startup"
)

// GetVersion returns build information as JSON.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, startup.GetBuildInfo())
}

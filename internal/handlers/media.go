package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/listing"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/metrics"
)

// MediaItem is a single gallery entry in an API response. Video entries carry
// a thumbnail reference; image entries render directly from their URL.
type MediaItem struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// MediaGroup is a run of items sharing a capture date.
type MediaGroup struct {
	Date  string      `json:"date"`
	Items []MediaItem `json:"items"`
}

// MediaResponse is the paged media listing returned by GetMedia.
type MediaResponse struct {
	Category string       `json:"category"`
	Species  string       `json:"species,omitempty"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
	Groups   []MediaGroup `json:"groups"`
	HasMore  bool         `json:"hasMore"`
}

// GetMedia lists one page of media for a category, newest first, optionally
// filtered by species, grouped by capture date.
func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	category, err := mediatypes.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	species := r.URL.Query().Get("species")
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	all, err := h.lister.List(r.Context(), category)
	if err != nil {
		metrics.PageLoadsTotal.WithLabelValues(string(category), "error").Inc()
		logging.Error("listing %s failed: %v", category, err)

		status := http.StatusInternalServerError
		var listErr *listing.ListError
		if errors.As(err, &listErr) {
			status = http.StatusBadGateway
		}
		writeJSONError(w, "failed to list media", status)
		return
	}

	// The lister may hand back a cached slice, so sort a private copy.
	filtered := gallery.Filter(all, species)
	items := make([]gallery.Item, len(filtered))
	copy(items, filtered)
	gallery.Sort(items, category)

	window, more := gallery.Page(items, page, h.pageSize)
	groups := gallery.GroupByDate(window, category)

	response := MediaResponse{
		Category: string(category),
		Species:  species,
		Page:     page,
		PageSize: h.pageSize,
		Groups:   make([]MediaGroup, 0, len(groups)),
		HasMore:  more,
	}

	for _, group := range groups {
		mg := MediaGroup{Date: group.Date, Items: make([]MediaItem, 0, len(group.Items))}
		for _, item := range group.Items {
			mi := MediaItem{Name: item.Name, URL: item.URL}
			if category.IsVideo() {
				mi.Thumbnail = "/api/thumbnail/" + item.Name
				h.resolver.ResolveAsync(gallery.Item{Name: item.Name, URL: h.videos.SourceURL(item.Name)})
			}
			mg.Items = append(mg.Items, mi)
		}
		response.Groups = append(response.Groups, mg)
	}

	metrics.PageLoadsTotal.WithLabelValues(string(category), "success").Inc()
	logging.Debug("GetMedia %s page=%d species=%q -> %d groups, hasMore=%v (%s)",
		category, page, species, len(response.Groups), more, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// Package handlers implements the HTTP API: paged media listings with
// species filtering and date grouping, on-demand video thumbnails, the
// video playback proxy, and health and version endpoints.
package handlers

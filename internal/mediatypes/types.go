package mediatypes

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category identifies one of the two media collections, each backed by its
// own storage bucket.
type Category string

const (
	// CategoryImages is the still-image collection.
	CategoryImages Category = "images"
	// CategoryVideos is the video-clip collection.
	CategoryVideos Category = "videos"
)

// Categories lists all valid categories.
var Categories = []Category{CategoryImages, CategoryVideos}

// ParseCategory validates a raw category string from a request or CLI flag.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(s)) {
	case CategoryImages:
		return CategoryImages, nil
	case CategoryVideos:
		return CategoryVideos, nil
	default:
		return "", fmt.Errorf("invalid media category: %q", s)
	}
}

// IsVideo reports whether the category holds video clips.
func (c Category) IsVideo() bool {
	return c == CategoryVideos
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// imageExtensions are the image formats the camera uploads.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// videoExtensions are the video formats the camera uploads.
var videoExtensions = map[string]bool{
	".mp4": true,
}

// MimeTypes maps supported file extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".mp4":  "video/mp4",
}

// AllowedName reports whether an object name belongs in a category listing.
// Hidden objects and unsupported extensions are skipped, matching what the
// camera actually uploads.
func AllowedName(name string, c Category) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if c.IsVideo() {
		return videoExtensions[ext]
	}
	return imageExtensions[ext]
}

// GetMimeType returns the MIME type for a file name, or
// "application/octet-stream" for unrecognized extensions.
func GetMimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

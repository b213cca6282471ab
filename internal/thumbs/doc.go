// Package thumbs generates and caches still-image thumbnails for video
// items.
//
// Resolution is a three-step pipeline: look up the persisted entry (SQLite,
// keyed by item name) and validate its backing file; on miss, extract one
// frame with ffmpeg at the configured seek offset (falling back to an
// earlier offset, bounded by a decode timeout); letterbox the frame onto a
// black canvas, JPEG-encode it, write it under the cache directory and
// persist the entry.
//
// Any failure along the way resolves to a well-known placeholder image and
// never surfaces as an error; a bounded number of generations run
// concurrently and duplicate requests for one item coalesce.
package thumbs

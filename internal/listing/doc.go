// Package listing fetches media object listings from Google Cloud Storage.
//
// One bucket backs each category. A listing is the complete current object
// set for that bucket, filtered down to supported media names; sorting and
// pagination happen locally in the gallery package. The Cached decorator
// keeps listings in memory for a short TTL so an incremental page cycle
// re-lists the bucket at most once per TTL window.
package listing

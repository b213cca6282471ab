// Package workers provides worker-count sizing helpers.
//
// The thumbnail resolver uses a small fixed concurrency bound by default
// because each generation runs an ffmpeg process against a remote object;
// the bound can be raised or lowered with the THUMBNAIL_WORKERS environment
// variable.
package workers

// Command thumbwarm walks the video gallery page by page and generates any
// missing thumbnails ahead of time, so the first viewer of a page never
// waits on frame extraction.
package main

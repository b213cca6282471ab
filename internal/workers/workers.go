package workers

import (
	"os"
	"runtime"
	"strconv"
)

// DefaultThumbnailWorkers bounds concurrent thumbnail generations so a burst
// of video pages cannot saturate the decode pipeline.
const DefaultThumbnailWorkers = 3

// ThumbnailCount returns the number of concurrent thumbnail generations to
// allow. The default is DefaultThumbnailWorkers regardless of CPU count,
// since each generation shells out to ffmpeg and is network as well as CPU
// bound. THUMBNAIL_WORKERS overrides it; limit caps the result (0 = no cap).
func ThumbnailCount(limit int) int {
	count := DefaultThumbnailWorkers

	if override := os.Getenv("THUMBNAIL_WORKERS"); override != "" {
		if parsed, err := strconv.Atoi(override); err == nil && parsed > 0 {
			count = parsed
		}
	}

	if limit > 0 && count > limit {
		return limit
	}
	return count
}

// ForIO returns a worker count for I/O-bound tasks (2 per available CPU,
// respecting container CPU limits via GOMAXPROCS). The limit parameter caps
// the result; use 0 for no cap.
func ForIO(limit int) int {
	count := runtime.GOMAXPROCS(0) * 2
	if count < 1 {
		count = 1
	}
	if limit > 0 && count > limit {
		return limit
	}
	return count
}

package gallery

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"birdcam-gallery/internal/mediatypes"
)

// MalformedNameError reports a media name whose date could not be derived.
// Such items are excluded from grouping instead of producing a bogus date.
type MalformedNameError struct {
	Name     string
	Category mediatypes.Category
	Reason   string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed %s name %q: %s", e.Category, e.Name, e.Reason)
}

// DateFromName derives the capture date (YYYY-MM-DD) from a media name.
//
// Video names encode a Unix timestamp in seconds before the first dot
// ("1700000000.mp4"); the date is taken in UTC. Image names start with a
// compact YYYYMMDD date ("20250313_100536_bird.jpg").
func DateFromName(name string, category mediatypes.Category) (string, error) {
	if category.IsVideo() {
		ts, err := videoTimestamp(name)
		if err != nil {
			return "", err
		}
		return time.Unix(ts, 0).UTC().Format("2006-01-02"), nil
	}

	if len(name) < 8 {
		return "", &MalformedNameError{Name: name, Category: category, Reason: "shorter than 8 characters"}
	}
	dateStr := name[:8]
	for _, r := range dateStr {
		if r < '0' || r > '9' {
			return "", &MalformedNameError{Name: name, Category: category, Reason: "date prefix is not numeric"}
		}
	}
	return dateStr[0:4] + "-" + dateStr[4:6] + "-" + dateStr[6:8], nil
}

// videoTimestamp parses the Unix timestamp encoded before the first dot of
// a video name.
func videoTimestamp(name string) (int64, error) {
	prefix, _, _ := strings.Cut(name, ".")
	ts, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, &MalformedNameError{
			Name:     name,
			Category: mediatypes.CategoryVideos,
			Reason:   "timestamp prefix is not numeric",
		}
	}
	return ts, nil
}

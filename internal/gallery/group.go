package gallery

import (
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/metrics"
)

// GroupByDate buckets one page of items by their derived capture date.
// Groups appear in first-seen order and items keep their page order, so
// concatenating all groups' items reproduces the page exactly.
//
// Items whose name cannot be dated are excluded and logged; one bad name
// never fails the page.
func GroupByDate(items []Item, category mediatypes.Category) []DatedGroup {
	var groups []DatedGroup
	index := make(map[string]int)

	for _, item := range items {
		date, err := DateFromName(item.Name, category)
		if err != nil {
			logging.Warn("excluding undatable item from grouping: %v", err)
			metrics.MalformedNamesTotal.Inc()
			continue
		}

		if i, ok := index[date]; ok {
			groups[i].Items = append(groups[i].Items, item)
			continue
		}
		index[date] = len(groups)
		groups = append(groups, DatedGroup{Date: date, Items: []Item{item}})
	}

	return groups
}

package gallery

import (
	"sort"
	"strings"

	"birdcam-gallery/internal/mediatypes"
)

// Filter keeps items whose name contains the species substring,
// case-insensitively. An empty filter keeps everything. The relative order
// of kept items is preserved.
func Filter(items []Item, species string) []Item {
	if species == "" {
		return items
	}
	needle := strings.ToLower(species)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Sort orders items newest-first, in place, using the per-category key.
//
// Videos sort by descending Unix timestamp parsed from the name; items with
// unparsable timestamps sort last, keeping their relative order. Images sort
// by descending comparison of the first 15 name characters, which encode
// date and time, so lexicographic order equals chronological order.
func Sort(items []Item, category mediatypes.Category) {
	if category.IsVideo() {
		sort.SliceStable(items, func(i, j int) bool {
			tsI, errI := videoTimestamp(items[i].Name)
			tsJ, errJ := videoTimestamp(items[j].Name)
			if errI != nil {
				return false
			}
			if errJ != nil {
				return true
			}
			return tsI > tsJ
		})
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return imageSortKey(items[i].Name) > imageSortKey(items[j].Name)
	})
}

func imageSortKey(name string) string {
	if len(name) > 15 {
		return name[:15]
	}
	return name
}

// Page slices the 1-based page window [(page-1)*size, page*size) out of the
// filtered, sorted sequence and reports whether more pages follow. Repeated
// calls with increasing page numbers partition the sequence exactly.
func Page(items []Item, page, size int) (window []Item, more bool) {
	if page < 1 || size < 1 {
		return nil, false
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil, false
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], end < len(items)
}

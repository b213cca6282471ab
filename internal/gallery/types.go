package gallery

// Item is one media object from a category listing. Name is the
// backend-assigned object name, unique within a category; URL is the
// dereferenceable location derived from the name and category.
type Item struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DatedGroup is the unit of display grouping: all items on one loaded page
// that share a derived calendar date, in filtered-sort order.
type DatedGroup struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Items []Item `json:"items"`
}

// DefaultPageSize is the fixed page-window size used by the apps.
const DefaultPageSize = 15

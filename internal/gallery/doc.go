// Package gallery implements the media listing pipeline shared by the app
// variants: species filtering, newest-first sorting, fixed-size page
// windowing, date grouping, and the incremental load-next-page controller.
//
// The pipeline stages are pure functions over []Item so they can be tested
// and composed independently:
//
//	items, err := lister.List(ctx, category)
//	filtered := gallery.Filter(items, "sparrow")
//	gallery.Sort(filtered, category)
//	window, more := gallery.Page(filtered, 1, gallery.DefaultPageSize)
//	groups := gallery.GroupByDate(window, category)
//
// Controller drives the same stages across an incremental load cycle,
// accumulating DatedGroups by concatenation and discarding stale results
// after a category or filter switch.
package gallery

package gallery

import (
	"context"
	"sync"

	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/metrics"
)

// Lister fetches the complete current listing for a category. The backend
// does no pagination; the full set is fetched and paginated locally.
type Lister interface {
	List(ctx context.Context, category mediatypes.Category) ([]Item, error)
}

// Resolver accepts fire-and-forget thumbnail resolution requests for video
// items. Implementations must be idempotent per item and must not block.
type Resolver interface {
	ResolveAsync(item Item)
}

// State is a snapshot of a controller's accumulated gallery state.
type State struct {
	Category mediatypes.Category
	Species  string
	Groups   []DatedGroup
	Page     int // next page to load, 1-based
	HasMore  bool
	Loading  bool
	Err      error
}

// Controller drives the incremental load-next-page cycle for one
// (category, species) pair. Page loads are serialized by the loading guard;
// switching category or species resets the state and bumps a generation
// counter so late-arriving results for the old combination are discarded
// instead of applied.
type Controller struct {
	lister   Lister
	resolver Resolver // may be nil
	pageSize int

	mu       sync.Mutex
	category mediatypes.Category
	species  string
	groups   []DatedGroup
	page     int
	hasMore  bool
	loading  bool
	lastErr  error
	gen      uint64
}

// NewController creates a controller for the given category with no species
// filter. pageSize <= 0 selects DefaultPageSize; resolver may be nil when no
// thumbnail resolution is wanted.
func NewController(lister Lister, resolver Resolver, category mediatypes.Category, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	c := &Controller{
		lister:   lister,
		resolver: resolver,
		pageSize: pageSize,
	}
	c.Reset(category, "")
	return c
}

// Reset clears accumulated state and retargets the controller at a new
// (category, species) pair. Any in-flight load becomes stale and its result
// is dropped on arrival.
func (c *Controller) Reset(category mediatypes.Category, species string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.category = category
	c.species = species
	c.groups = nil
	c.page = 1
	c.hasMore = true
	c.loading = false
	c.lastErr = nil
}

// LoadNext loads the next page: fetch, filter, sort, window, group, append.
// It is a no-op when a load is already in flight or no more pages remain.
// On lister failure the accumulated groups and the page cursor are kept so
// the same page can be retried.
func (c *Controller) LoadNext(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	gen := c.gen
	category := c.category
	species := c.species
	page := c.page
	c.mu.Unlock()

	items, err := c.lister.List(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// The controller was reset while this load was in flight.
		logging.Debug("discarding stale page load for %s (generation %d)", category, gen)
		return nil
	}
	c.loading = false

	if err != nil {
		c.lastErr = err
		metrics.PageLoadsTotal.WithLabelValues(category.String(), "error").Inc()
		return err
	}

	filtered := Filter(items, species)
	sorted := make([]Item, len(filtered))
	copy(sorted, filtered)
	Sort(sorted, category)

	window, more := Page(sorted, page, c.pageSize)
	groups := GroupByDate(window, category)

	// Append, never re-group: two pages sharing a date keep separate groups.
	c.groups = append(c.groups, groups...)
	c.page++
	c.hasMore = more
	c.lastErr = nil
	metrics.PageLoadsTotal.WithLabelValues(category.String(), "success").Inc()

	if category.IsVideo() && c.resolver != nil {
		for _, item := range window {
			c.resolver.ResolveAsync(item)
		}
	}

	return nil
}

// Snapshot returns a copy of the current state. The returned group slice is
// shared but never mutated once appended.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	groups := make([]DatedGroup, len(c.groups))
	copy(groups, c.groups)

	return State{
		Category: c.category,
		Species:  c.species,
		Groups:   groups,
		Page:     c.page,
		HasMore:  c.hasMore,
		Loading:  c.loading,
		Err:      c.lastErr,
	}
}

// HasMore reports whether further load requests would fetch anything.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Err returns the error from the most recent failed load, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

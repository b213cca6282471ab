package listing

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/metrics"
)

// Cached wraps a Lister with a short-TTL in-memory cache so repeated page
// loads reuse one bucket listing instead of re-listing per page. Errors are
// never cached; a failed fetch is retried on the next call.
type Cached struct {
	next  Lister
	cache *gocache.Cache
}

// NewCached creates a caching decorator with the given TTL.
func NewCached(next Lister, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// List returns the cached listing when fresh, fetching through otherwise.
func (c *Cached) List(ctx context.Context, category mediatypes.Category) ([]gallery.Item, error) {
	if cached, found := c.cache.Get(category.String()); found {
		metrics.ListingCacheHits.WithLabelValues(category.String()).Inc()
		logging.Debug("listing cache hit for %s", category)
		return cached.([]gallery.Item), nil
	}

	items, err := c.next.List(ctx, category)
	if err != nil {
		return nil, err
	}

	c.cache.Set(category.String(), items, gocache.DefaultExpiration)
	return items, nil
}

// Invalidate drops the cached listing for a category.
func (c *Cached) Invalidate(category mediatypes.Category) {
	c.cache.Delete(category.String())
}

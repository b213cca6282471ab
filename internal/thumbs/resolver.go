package thumbs

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // MD5 keys the thumbnail files, not a security boundary
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"birdcam-gallery/internal/database"
	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/metrics"
	"birdcam-gallery/internal/workers"
)

// Config holds the thumbnail generation policy.
type Config struct {
	Dir            string        // directory for generated thumbnails
	SeekOffset     time.Duration // preferred frame position
	FallbackOffset time.Duration // retried when the preferred seek fails
	Timeout        time.Duration // per decode attempt
	Width          int
	Height         int
	Quality        int // JPEG quality
	MaxEntries     int // LRU bound on persisted entries
	Concurrency    int // simultaneous generations
}

// DefaultConfig returns the production thumbnail policy.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		SeekOffset:     5 * time.Second,
		FallbackOffset: 500 * time.Millisecond,
		Timeout:        15 * time.Second,
		Width:          640,
		Height:         360,
		Quality:        80,
		MaxEntries:     5000,
		Concurrency:    workers.ThumbnailCount(0),
	}
}

type inflightCall struct {
	done chan struct{}
	ref  string
}

// Resolver materializes thumbnail images for video items and caches them
// persistently. Resolution is idempotent per item: repeated and concurrent
// calls coalesce onto at most one generation, and at most cfg.Concurrency
// generations run at once. Failures resolve to the placeholder reference,
// never to an error.
type Resolver struct {
	store     *database.Store
	extractor FrameExtractor
	cfg       Config

	sem chan struct{}

	mu       sync.Mutex
	inflight map[string]*inflightCall

	placeholder string
}

// NewResolver creates a resolver writing thumbnails under cfg.Dir. The
// placeholder image is materialized up front so failures always have a
// reference to fall back on.
func NewResolver(store *database.Store, extractor FrameExtractor, cfg Config) (*Resolver, error) {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	r := &Resolver{
		store:     store,
		extractor: extractor,
		cfg:       cfg,
		sem:       make(chan struct{}, cfg.Concurrency),
		inflight:  make(map[string]*inflightCall),
	}

	placeholder, err := r.writePlaceholder()
	if err != nil {
		return nil, err
	}
	r.placeholder = placeholder

	logging.Info("Thumbnail resolver ready: dir=%s seek=%v concurrency=%d bound=%d",
		cfg.Dir, cfg.SeekOffset, cfg.Concurrency, cfg.MaxEntries)
	return r, nil
}

// Placeholder returns the well-known fallback image path.
func (r *Resolver) Placeholder() string {
	return r.placeholder
}

// Resolve returns the thumbnail image path for a video item, generating and
// persisting it on first need. It never returns an error: any failure
// yields the placeholder path and is logged.
func (r *Resolver) Resolve(ctx context.Context, item gallery.Item) string {
	// Fast path: a persisted entry whose backing file still exists.
	if path, ok := r.lookup(ctx, item.Name); ok {
		return path
	}

	// Coalesce concurrent resolutions of the same item.
	r.mu.Lock()
	if call, ok := r.inflight[item.Name]; ok {
		r.mu.Unlock()
		select {
		case <-call.done:
			return call.ref
		case <-ctx.Done():
			return r.placeholder
		}
	}
	call := &inflightCall{done: make(chan struct{})}
	r.inflight[item.Name] = call
	r.mu.Unlock()

	call.ref = r.generate(ctx, item)
	close(call.done)

	r.mu.Lock()
	delete(r.inflight, item.Name)
	r.mu.Unlock()

	return call.ref
}

// ResolveAsync requests resolution without blocking the caller. Used by the
// gallery controller after a page load; the page renders with placeholders
// while generations proceed in the background.
func (r *Resolver) ResolveAsync(item gallery.Item) {
	go r.Resolve(context.Background(), item)
}

// lookup checks the persistent store and validates that the cached file
// still exists on disk before trusting it.
func (r *Resolver) lookup(ctx context.Context, name string) (string, bool) {
	entry, err := r.store.Get(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		return "", false
	}
	if err != nil {
		logging.Warn("thumbnail store lookup failed for %s: %v", name, err)
		return "", false
	}

	if _, err := os.Stat(entry.Path); err != nil {
		// The backing file vanished; drop the entry and regenerate.
		logging.Debug("cached thumbnail missing on disk for %s, regenerating", name)
		if err := r.store.Delete(ctx, name); err != nil {
			logging.Warn("failed to drop stale thumbnail entry for %s: %v", name, err)
		}
		return "", false
	}

	if err := r.store.Touch(ctx, name); err != nil {
		logging.Warn("failed to touch thumbnail entry for %s: %v", name, err)
	}
	metrics.ThumbnailCacheHits.Inc()
	return entry.Path, true
}

// generate runs one bounded thumbnail generation and persists the result.
func (r *Resolver) generate(ctx context.Context, item gallery.Item) string {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return r.placeholder
	}
	defer func() { <-r.sem }()

	// Another caller may have finished while we waited for a slot.
	if path, ok := r.lookup(ctx, item.Name); ok {
		return path
	}

	metrics.ThumbnailsInFlight.Inc()
	defer metrics.ThumbnailsInFlight.Dec()
	start := time.Now()

	frame, err := r.extractFrame(ctx, item.URL)
	if err != nil {
		logging.Warn("thumbnail generation failed for %s: %v", item.Name, err)
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return r.placeholder
	}

	img, err := imaging.Decode(bytes.NewReader(frame))
	if err != nil {
		logging.Warn("failed to decode extracted frame for %s: %v", item.Name, err)
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return r.placeholder
	}

	thumb := letterbox(img, r.cfg.Width, r.cfg.Height)
	path := r.thumbPath(item.Name)

	if err := imaging.Save(thumb, path, imaging.JPEGQuality(r.cfg.Quality)); err != nil {
		logging.Warn("failed to save thumbnail for %s: %v", item.Name, err)
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return r.placeholder
	}

	if err := r.store.Put(ctx, item.Name, path); err != nil {
		logging.Warn("failed to persist thumbnail entry for %s: %v", item.Name, err)
	}
	r.enforceBound(ctx)

	metrics.ThumbnailsGeneratedTotal.WithLabelValues("success").Inc()
	metrics.ThumbnailGenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("generated thumbnail for %s in %v", item.Name, time.Since(start))
	return path
}

// extractFrame tries the preferred seek offset, then the fallback offset,
// each under the decode timeout.
func (r *Resolver) extractFrame(ctx context.Context, source string) ([]byte, error) {
	attempt := func(offset time.Duration) ([]byte, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
		return r.extractor.ExtractFrame(attemptCtx, source, offset)
	}

	frame, err := attempt(r.cfg.SeekOffset)
	if err == nil {
		return frame, nil
	}
	logging.Debug("frame extraction at %v failed (%v), retrying at %v",
		r.cfg.SeekOffset, err, r.cfg.FallbackOffset)
	return attempt(r.cfg.FallbackOffset)
}

// enforceBound applies the LRU entry bound and unlinks evicted files.
func (r *Resolver) enforceBound(ctx context.Context) {
	if r.cfg.MaxEntries <= 0 {
		return
	}
	removed, err := r.store.EvictLRU(ctx, r.cfg.MaxEntries)
	if err != nil {
		logging.Warn("thumbnail eviction failed: %v", err)
		return
	}
	for _, path := range removed {
		if path == r.placeholder {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Warn("failed to remove evicted thumbnail %s: %v", path, err)
		}
	}
}

// thumbPath maps an item name to its thumbnail file. Names are hashed so
// arbitrary object names cannot escape the cache directory.
func (r *Resolver) thumbPath(name string) string {
	hash := md5.Sum([]byte(name)) //nolint:gosec // cache key, not security
	return filepath.Join(r.cfg.Dir, fmt.Sprintf("%x.jpg", hash))
}

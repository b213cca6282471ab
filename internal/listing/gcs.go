package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/metrics"
)

// publicURLFormat is the anonymous-read object URL for a public bucket.
const publicURLFormat = "https://storage.googleapis.com/%s/%s"

// GCS lists media objects from one Google Cloud Storage bucket per
// category. Video URLs point at the service's own proxy path so playback
// goes through /api/video/<name>; image URLs are the public bucket URLs.
type GCS struct {
	client      *storage.Client
	buckets     map[mediatypes.Category]string
	videoPrefix string // URL prefix for proxied video playback
}

// NewGCS creates a lister over the configured buckets. videoPrefix is the
// path prefix prepended to video object names when deriving their URLs
// (e.g. "/api/video/").
func NewGCS(client *storage.Client, buckets map[mediatypes.Category]string, videoPrefix string) *GCS {
	return &GCS{
		client:      client,
		buckets:     buckets,
		videoPrefix: videoPrefix,
	}
}

// List fetches the full object listing for a category. Hidden objects and
// unsupported extensions are skipped. Any iteration failure aborts the
// listing with a *ListError; a partial listing is never returned as truth.
func (g *GCS) List(ctx context.Context, category mediatypes.Category) ([]gallery.Item, error) {
	bucketName, ok := g.buckets[category]
	if !ok {
		return nil, &ListError{Category: category, Err: fmt.Errorf("no bucket configured")}
	}

	start := time.Now()
	it := g.client.Bucket(bucketName).Objects(ctx, nil)

	var items []gallery.Item
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			metrics.ListingFetchesTotal.WithLabelValues(category.String(), "error").Inc()
			return nil, &ListError{Category: category, Err: err}
		}

		if !mediatypes.AllowedName(attrs.Name, category) {
			continue
		}

		items = append(items, gallery.Item{
			Name: attrs.Name,
			URL:  g.itemURL(bucketName, attrs.Name, category),
		})
	}

	metrics.ListingFetchesTotal.WithLabelValues(category.String(), "success").Inc()
	metrics.ListingFetchDuration.WithLabelValues(category.String()).Observe(time.Since(start).Seconds())
	metrics.ListingObjects.WithLabelValues(category.String()).Set(float64(len(items)))
	logging.Debug("listed %d %s objects from %s in %v", len(items), category, bucketName, time.Since(start))

	return items, nil
}

func (g *GCS) itemURL(bucket, name string, category mediatypes.Category) string {
	if category.IsVideo() && g.videoPrefix != "" {
		return g.videoPrefix + name
	}
	return fmt.Sprintf(publicURLFormat, bucket, name)
}

// SourceURL returns the direct bucket URL for a video object. Frame
// extraction reads from the bucket rather than looping back through the
// playback proxy.
func (g *GCS) SourceURL(name string) string {
	bucketName := g.buckets[mediatypes.CategoryVideos]
	return fmt.Sprintf(publicURLFormat, bucketName, name)
}

// Open returns a reader over one video object plus its content type, for
// the playback proxy path.
func (g *GCS) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	bucketName, ok := g.buckets[mediatypes.CategoryVideos]
	if !ok {
		return nil, "", fmt.Errorf("no video bucket configured")
	}

	r, err := g.client.Bucket(bucketName).Object(name).NewReader(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("open %s/%s: %w", bucketName, name, err)
	}
	return r, r.Attrs.ContentType, nil
}

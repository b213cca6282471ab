package handlers

import (
	"context"
	"io"
	"time"

	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/startup"
)

// ThumbResolver resolves gallery items to thumbnail image paths on disk.
type ThumbResolver interface {
	Resolve(ctx context.Context, item gallery.Item) string
	ResolveAsync(item gallery.Item)
	Placeholder() string
}

// VideoOpener streams a video object from the backing bucket and names the
// direct bucket URL frame extraction should read from.
type VideoOpener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	SourceURL(name string) string
}

type Handlers struct {
	lister   gallery.Lister
	resolver ThumbResolver
	videos   VideoOpener
	pageSize int
	started  time.Time
}

func New(lister gallery.Lister, resolver ThumbResolver, videos VideoOpener, config *startup.Config) *Handlers {
	return &Handlers{
		lister:   lister,
		resolver: resolver,
		videos:   videos,
		pageSize: config.PageSize,
		started:  time.Now(),
	}
}

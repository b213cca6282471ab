package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"birdcam-gallery/internal/database"
	"birdcam-gallery/internal/gallery"
	"birdcam-gallery/internal/listing"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/startup"
	"birdcam-gallery/internal/thumbs"
)

var (
	imageBucket string
	videoBucket string
	cacheDir    string
	databaseDir string
	species     string
	pageSize    int
	maxPages    int
)

func main() {
	root := &cobra.Command{
		Use:     "thumbwarm",
		Short:   "Pre-generate video thumbnails for the bird camera gallery",
		Long:    "Walks the video gallery page by page and generates any missing thumbnails, so the first viewer of a page never waits on ffmpeg.",
		Version: startup.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return warm(cmd.Context())
		},
	}

	root.Flags().StringVar(&imageBucket, "image-bucket", "bird_cam_images", "bucket holding still images")
	root.Flags().StringVar(&videoBucket, "video-bucket", "bird_cam_videos", "bucket holding video clips")
	root.Flags().StringVar(&cacheDir, "cache-dir", "/cache", "thumbnail cache directory")
	root.Flags().StringVar(&databaseDir, "database-dir", "/database", "thumbnail store directory")
	root.Flags().StringVar(&species, "species", "", "only warm videos whose name contains this substring")
	root.Flags().IntVar(&pageSize, "page-size", gallery.DefaultPageSize, "videos per page")
	root.Flags().IntVar(&maxPages, "max-pages", 0, "stop after this many pages (0 = all)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func warm(ctx context.Context) error {
	start := time.Now()

	store, err := database.New(ctx, filepath.Join(databaseDir, "gallery.db"))
	if err != nil {
		return fmt.Errorf("initializing thumbnail store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn("closing thumbnail store: %v", err)
		}
	}()

	client, err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil {
		return fmt.Errorf("creating storage client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logging.Warn("closing storage client: %v", err)
		}
	}()

	gcs := listing.NewGCS(client, map[mediatypes.Category]string{
		mediatypes.CategoryImages: imageBucket,
		mediatypes.CategoryVideos: videoBucket,
	}, "")

	resolver, err := thumbs.NewResolver(store, &thumbs.FFmpeg{}, thumbs.DefaultConfig(filepath.Join(cacheDir, "thumbnails")))
	if err != nil {
		return fmt.Errorf("initializing thumbnail resolver: %w", err)
	}

	warmer := &syncResolver{resolver: resolver, source: gcs.SourceURL}

	controller := gallery.NewController(gcs, warmer, mediatypes.CategoryVideos, pageSize)
	if species != "" {
		controller.Reset(mediatypes.CategoryVideos, species)
	}

	pages := 0
	for controller.HasMore() {
		if maxPages > 0 && pages >= maxPages {
			break
		}
		if err := controller.LoadNext(ctx); err != nil {
			return fmt.Errorf("loading page %d: %w", pages+1, err)
		}
		pages++
		logging.Info("warmed page %d (%d thumbnails so far)", pages, warmer.count)
	}

	logging.Info("warmed %d thumbnails across %d pages in %v", warmer.count, pages, time.Since(start))
	return nil
}

// syncResolver generates thumbnails inline so the walk only advances once a
// page's thumbnails exist. Item URLs are rewritten to direct bucket URLs
// since ffmpeg reads straight from storage here.
type syncResolver struct {
	resolver *thumbs.Resolver
	source   func(name string) string
	count    int
}

func (s *syncResolver) ResolveAsync(item gallery.Item) {
	s.resolver.Resolve(context.Background(), gallery.Item{Name: item.Name, URL: s.source(item.Name)})
	s.count++
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"birdcam-gallery/internal/database"
	"birdcam-gallery/internal/handlers"
	"birdcam-gallery/internal/listing"
	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/mediatypes"
	"birdcam-gallery/internal/middleware"
	"birdcam-gallery/internal/startup"
	"birdcam-gallery/internal/thumbs"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	ctx := context.Background()

	dbStart := time.Now()
	store, err := database.New(ctx, config.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize thumbnail store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn("closing thumbnail store: %v", err)
		}
	}()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Public buckets need no credentials for reads.
	client, err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil {
		logging.Fatal("Failed to create storage client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logging.Warn("closing storage client: %v", err)
		}
	}()

	gcs := listing.NewGCS(client, map[mediatypes.Category]string{
		mediatypes.CategoryImages: config.ImageBucket,
		mediatypes.CategoryVideos: config.VideoBucket,
	}, "/api/video/")
	lister := listing.NewCached(gcs, config.ListingTTL)

	startup.LogThumbnailInit()
	thumbCfg := thumbs.DefaultConfig(config.ThumbnailDir)
	thumbCfg.SeekOffset = config.ThumbnailSeek
	thumbCfg.FallbackOffset = config.ThumbnailFallback
	thumbCfg.Timeout = config.ThumbnailTimeout
	thumbCfg.Width = config.ThumbnailWidth
	thumbCfg.Height = config.ThumbnailHeight
	thumbCfg.Quality = config.ThumbnailQuality
	thumbCfg.MaxEntries = config.ThumbnailEntries
	resolver, err := thumbs.NewResolver(store, &thumbs.FFmpeg{}, thumbCfg)
	if err != nil {
		logging.Fatal("Failed to initialize thumbnail resolver: %v", err)
	}

	h := handlers.New(lister, resolver, gcs, config)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	startup.LogHTTPRoutes(router)

	handler := middleware.RequestLogger(middleware.Metrics(router))

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func handleShutdown(srv, metricsSrv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}

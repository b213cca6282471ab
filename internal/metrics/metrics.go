package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bird_gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bird_gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bird_gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Listing metrics
var (
	ListingFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bird_gallery_listing_fetches_total",
			Help: "Total number of bucket listing fetches",
		},
		[]string{"category", "status"},
	)

	ListingFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bird_gallery_listing_fetch_duration_seconds",
			Help:    "Bucket listing fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"category"},
	)

	ListingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bird_gallery_listing_cache_hits_total",
			Help: "Total number of listing requests served from the in-memory cache",
		},
		[]string{"category"},
	)

	ListingObjects = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bird_gallery_listing_objects",
			Help: "Number of media objects in the last successful listing",
		},
		[]string{"category"},
	)
)

// Gallery metrics
var (
	PageLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bird_gallery_page_loads_total",
			Help: "Total number of gallery page loads",
		},
		[]string{"category", "status"},
	)

	MalformedNamesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bird_gallery_malformed_names_total",
			Help: "Total number of media items excluded because their name could not be dated",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bird_gallery_thumbnails_generated_total",
			Help: "Total number of thumbnail generation attempts",
		},
		[]string{"status"},
	)

	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bird_gallery_thumbnail_cache_hits_total",
			Help: "Total number of thumbnail resolutions served from the persistent cache",
		},
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bird_gallery_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	ThumbnailsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bird_gallery_thumbnails_in_flight",
			Help: "Number of thumbnail generations currently running",
		},
	)

	ThumbnailEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bird_gallery_thumbnail_evictions_total",
			Help: "Total number of thumbnail cache entries evicted",
		},
	)
)

// Store metrics
var (
	StoreQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bird_gallery_store_queries_total",
			Help: "Total number of thumbnail store queries",
		},
		[]string{"operation", "status"},
	)

	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bird_gallery_store_query_duration_seconds",
			Help:    "Thumbnail store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)
)

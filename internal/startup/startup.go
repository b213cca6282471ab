package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"birdcam-gallery/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	ImageBucket string
	VideoBucket string
	CacheDir    string
	DatabaseDir string
	Port        string
	MetricsPort string

	PageSize   int
	ListingTTL time.Duration

	ThumbnailSeek     time.Duration
	ThumbnailFallback time.Duration
	ThumbnailTimeout  time.Duration
	ThumbnailWidth    int
	ThumbnailHeight   int
	ThumbnailQuality  int
	ThumbnailEntries  int

	LogHealthChecks bool
	MetricsEnabled  bool

	// Derived paths
	DatabasePath string
	ThumbnailDir string
}

// fileConfig mirrors the optional YAML configuration file. Every field is a
// pointer so that an absent key falls through to the default instead of
// zeroing it.
type fileConfig struct {
	ImageBucket       *string `yaml:"imageBucket"`
	VideoBucket       *string `yaml:"videoBucket"`
	CacheDir          *string `yaml:"cacheDir"`
	DatabaseDir       *string `yaml:"databaseDir"`
	Port              *string `yaml:"port"`
	MetricsPort       *string `yaml:"metricsPort"`
	PageSize          *int    `yaml:"pageSize"`
	ListingTTL        *string `yaml:"listingTTL"`
	ThumbnailSeek     *string `yaml:"thumbnailSeek"`
	ThumbnailFallback *string `yaml:"thumbnailFallback"`
	ThumbnailTimeout  *string `yaml:"thumbnailTimeout"`
	ThumbnailWidth    *int    `yaml:"thumbnailWidth"`
	ThumbnailHeight   *int    `yaml:"thumbnailHeight"`
	ThumbnailQuality  *int    `yaml:"thumbnailQuality"`
	ThumbnailEntries  *int    `yaml:"thumbnailEntries"`
	LogHealthChecks   *bool   `yaml:"logHealthChecks"`
	MetricsEnabled    *bool   `yaml:"metricsEnabled"`
}

// LoadConfig loads configuration in three layers: built-in defaults, an
// optional YAML file named by CONFIG_FILE, then environment variables.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	file, err := loadConfigFile()
	if err != nil {
		return nil, err
	}

	imageBucket := resolveString("IMAGE_BUCKET", file.ImageBucket, "bird_cam_images")
	videoBucket := resolveString("VIDEO_BUCKET", file.VideoBucket, "bird_cam_videos")
	cacheDir := resolveString("CACHE_DIR", file.CacheDir, "/cache")
	databaseDir := resolveString("DATABASE_DIR", file.DatabaseDir, "/database")
	port := resolveString("PORT", file.Port, "8080")
	metricsPort := resolveString("METRICS_PORT", file.MetricsPort, "9090")
	pageSize := resolveInt("PAGE_SIZE", file.PageSize, 15)
	listingTTL := resolveDuration("LISTING_TTL", file.ListingTTL, time.Minute)
	thumbSeek := resolveDuration("THUMBNAIL_SEEK", file.ThumbnailSeek, 5*time.Second)
	thumbFallback := resolveDuration("THUMBNAIL_FALLBACK", file.ThumbnailFallback, 500*time.Millisecond)
	thumbTimeout := resolveDuration("THUMBNAIL_TIMEOUT", file.ThumbnailTimeout, 15*time.Second)
	thumbWidth := resolveInt("THUMBNAIL_WIDTH", file.ThumbnailWidth, 640)
	thumbHeight := resolveInt("THUMBNAIL_HEIGHT", file.ThumbnailHeight, 360)
	thumbQuality := resolveInt("THUMBNAIL_QUALITY", file.ThumbnailQuality, 80)
	thumbEntries := resolveInt("THUMBNAIL_MAX_ENTRIES", file.ThumbnailEntries, 5000)
	logHealthChecks := resolveBool("LOG_HEALTH_CHECKS", file.LogHealthChecks, false)
	metricsEnabled := resolveBool("METRICS_ENABLED", file.MetricsEnabled, true)

	logging.Info("  IMAGE_BUCKET:          %s", imageBucket)
	logging.Info("  VIDEO_BUCKET:          %s", videoBucket)
	logging.Info("  CACHE_DIR:             %s", cacheDir)
	logging.Info("  DATABASE_DIR:          %s", databaseDir)
	logging.Info("  PORT:                  %s", port)
	logging.Info("  METRICS_PORT:          %s", metricsPort)
	logging.Info("  METRICS_ENABLED:       %v", metricsEnabled)
	logging.Info("  PAGE_SIZE:             %d", pageSize)
	logging.Info("  LISTING_TTL:           %s", listingTTL)
	logging.Info("  THUMBNAIL_SEEK:        %s", thumbSeek)
	logging.Info("  THUMBNAIL_FALLBACK:    %s", thumbFallback)
	logging.Info("  THUMBNAIL_TIMEOUT:     %s", thumbTimeout)
	logging.Info("  THUMBNAIL_SIZE:        %dx%d (quality %d)", thumbWidth, thumbHeight, thumbQuality)
	logging.Info("  THUMBNAIL_MAX_ENTRIES: %d", thumbEntries)
	logging.Info("  LOG_HEALTH_CHECKS:     %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())

	if pageSize < 1 {
		logging.Warn("  Invalid PAGE_SIZE %d, using default: 15", pageSize)
		pageSize = 15
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	cacheDir, err = filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	logging.Info("  Cache directory (absolute): %s", cacheDir)

	databaseDir, err = filepath.Abs(databaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	logging.Info("  Database directory (absolute): %s", databaseDir)

	config := &Config{
		ImageBucket:       imageBucket,
		VideoBucket:       videoBucket,
		CacheDir:          cacheDir,
		DatabaseDir:       databaseDir,
		Port:              port,
		MetricsPort:       metricsPort,
		PageSize:          pageSize,
		ListingTTL:        listingTTL,
		ThumbnailSeek:     thumbSeek,
		ThumbnailFallback: thumbFallback,
		ThumbnailTimeout:  thumbTimeout,
		ThumbnailWidth:    thumbWidth,
		ThumbnailHeight:   thumbHeight,
		ThumbnailQuality:  thumbQuality,
		ThumbnailEntries:  thumbEntries,
		LogHealthChecks:   logHealthChecks,
		MetricsEnabled:    metricsEnabled,
		DatabasePath:      filepath.Join(databaseDir, "gallery.db"),
		ThumbnailDir:      filepath.Join(cacheDir, "thumbnails"),
	}

	if err := ensureDirectory(databaseDir, "database"); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}

	logging.Debug("  Testing database directory write access...")
	if err := testWriteAccess(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable: %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	if err := ensureDirectory(config.ThumbnailDir, "thumbnail"); err != nil {
		return nil, fmt.Errorf("thumbnail directory error: %w", err)
	}
	if err := testWriteAccess(config.ThumbnailDir); err != nil {
		return nil, fmt.Errorf("thumbnail directory is not writable: %w", err)
	}
	logging.Info("  [OK] Thumbnail directory is writable")

	return config, nil
}

// loadConfigFile reads the YAML file named by CONFIG_FILE. A missing file is
// an error only when the variable is set explicitly.
func loadConfigFile() (fileConfig, error) {
	var fc fileConfig

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	logging.Info("  Loaded configuration file: %s", path)
	return fc, nil
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ____  _         __   ______
   / __ )(_)________/ /  / ____/___ _____ ___
  / __  / / ___/ __  /  / / __/ __ '/ __ '_  \
 / /_/ / / /  / /_/ /  / /_/ / /_/ / / / / / /
/_____/_/_/   \__,_/   \____/\__,_/_/ /_/ /_/

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func resolveString(key string, fromFile *string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fromFile != nil {
		return *fromFile
	}
	return defaultValue
}

func resolveInt(key string, fromFile *int, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		} else {
			return parsed
		}
	}
	if fromFile != nil {
		return *fromFile
	}
	return defaultValue
}

func resolveBool(key string, fromFile *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		} else {
			return parsed
		}
	}
	if fromFile != nil {
		return *fromFile
	}
	return defaultValue
}

func resolveDuration(key string, fromFile *string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			logging.Warn("Invalid duration value for %s: %q, using default: %s", key, value, defaultValue)
		} else {
			return parsed
		}
	}
	if fromFile != nil {
		parsed, err := time.ParseDuration(*fromFile)
		if err != nil {
			logging.Warn("Invalid duration value for %s in config file: %q, using default: %s", key, *fromFile, defaultValue)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"birdcam-gallery/internal/logging"
	"birdcam-gallery/internal/metrics"
)

// Default timeout for store operations.
const defaultTimeout = 5 * time.Second

// ErrNotFound is returned when no entry exists for a key.
var ErrNotFound = errors.New("thumbnail entry not found")

// Entry is one persisted thumbnail record. Key is the source item's name
// (not its URL, which can change when the proxy host moves); Path is the
// locally materialized still image.
type Entry struct {
	Key      string
	Path     string
	Created  time.Time
	LastUsed time.Time
}

// Store is the persistent key-value store backing the thumbnail cache.
// Entries survive process restarts and are shared by every gallery
// instance; writes are keyed by item name so writers for different items
// never conflict.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (creating if needed) the thumbnail store at dbPath. The parent
// directory must already exist and be writable; startup.LoadConfig
// validates that before this is called.
func New(ctx context.Context, dbPath string) (*Store, error) {
	logging.Info("Thumbnail store path: %s", dbPath)

	// WAL mode and a busy timeout keep concurrent resolutions from
	// tripping over "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open thumbnail store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close store after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to thumbnail store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close store after schema failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize thumbnail store schema: %w", err)
	}

	logging.Info("Thumbnail store initialized at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS thumbnails (
		key TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		last_used INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_thumbnails_last_used ON thumbnails(last_used);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the entry for a key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (*Entry, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e Entry
	var created, lastUsed int64
	err = s.db.QueryRowContext(ctx,
		"SELECT key, path, created_at, last_used FROM thumbnails WHERE key = ?", key,
	).Scan(&e.Key, &e.Path, &created, &lastUsed)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	e.Created = time.Unix(created, 0)
	e.LastUsed = time.Unix(lastUsed, 0)
	return &e, nil
}

// Put inserts or replaces the entry for a key. Concurrent writers for the
// same key race last-write-wins, which is fine: the content is
// deterministic per source item.
func (s *Store) Put(ctx context.Context, key, path string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("put", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO thumbnails (key, path, created_at, last_used)
		VALUES (?, ?, strftime('%s', 'now'), strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			path = excluded.path,
			last_used = strftime('%s', 'now')
	`, key, path)
	return err
}

// Touch bumps an entry's last-used time for LRU accounting.
func (s *Store) Touch(ctx context.Context, key string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("touch", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx,
		"UPDATE thumbnails SET last_used = strftime('%s', 'now') WHERE key = ?", key)
	return err
}

// Delete removes the entry for a key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, "DELETE FROM thumbnails WHERE key = ?", key)
	return err
}

// Count returns the number of persisted entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM thumbnails").Scan(&n)
	return n, err
}

// EvictLRU removes the oldest-used entries until at most max remain,
// returning the backing paths of the removed entries so the caller can
// unlink the files.
func (s *Store) EvictLRU(ctx context.Context, max int) ([]string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("evict_lru", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM thumbnails").Scan(&count); err != nil {
		return nil, err
	}
	excess := count - max
	if excess <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT key, path FROM thumbnails ORDER BY last_used ASC, key ASC LIMIT ?", excess)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn("failed to close eviction rows: %v", closeErr)
		}
	}()

	var keys []string
	var paths []string
	for rows.Next() {
		var key, path string
		if err = rows.Scan(&key, &path); err != nil {
			return nil, err
		}
		keys = append(keys, key)
		paths = append(paths, path)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, key := range keys {
		if _, err = s.db.ExecContext(ctx, "DELETE FROM thumbnails WHERE key = ?", key); err != nil {
			return paths, err
		}
	}

	metrics.ThumbnailEvictionsTotal.Add(float64(len(keys)))
	logging.Debug("evicted %d thumbnail entries (bound %d)", len(keys), max)
	return paths, nil
}

// recordQuery records store query metrics.
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil && !errors.Is(err, ErrNotFound) {
		status = "error"
	}
	metrics.StoreQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.StoreQueryDuration.WithLabelValues(operation).Observe(duration)
}

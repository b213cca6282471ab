// Package database implements the persistent key-value store behind the
// thumbnail cache, backed by SQLite.
//
// Entries are keyed by source item name and hold the path of the locally
// materialized thumbnail plus LRU bookkeeping. There is no expiry policy;
// entries are dropped only by LRU eviction or when the backing file is
// found missing at use time.
package database

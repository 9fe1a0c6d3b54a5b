// Package cache handles the SQLite scan-result cache.
//
// A scan of a large tree mostly revisits files that haven't changed. The
// cache remembers, per document, the (size, mtime) it was last checked at and
// the outcome, so clean unchanged files can be skipped on the next run.
//
// A missing-link result depends on the state of *other* files too (the link
// target may have appeared or vanished since), so only clean results are ever
// reused: a file with broken links is re-verified every scan.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/mdcheck/internal/linkcheck"
)

// Dir is the cache directory created under the scan root.
const Dir = ".mdcheck"

// CurrentDBVersion is the current cache schema version. Incompatible caches
// are dropped and recreated; there is nothing in them worth migrating.
const CurrentDBVersion = 1

// Cache is the SQLite cache handle.
type Cache struct {
	db *sql.DB
}

// Entry is a cached per-document outcome.
type Entry struct {
	Diagnostics []linkcheck.Diagnostic
}

// Open opens or creates the cache under root. An unreadable or incompatible
// cache file is removed and recreated.
func Open(root string) (*Cache, error) {
	cacheDir := filepath.Join(root, Dir)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", Dir, err)
	}

	dbPath := filepath.Join(cacheDir, "cache.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if !isSchemaCompatible(db) {
		db.Close()
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale cache: %w", err)
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to reopen cache: %w", err)
		}
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// OpenInMemory opens an in-memory cache (for testing).
func OpenInMemory() (*Cache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// Close closes the cache.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached entry for a clean document, keyed by its path
// relative to the scan root plus its current size and mtime. ok is false when
// there is no entry for that exact key.
func (c *Cache) Lookup(relPath string, size, mtime int64) (Entry, bool) {
	var diagJSON string
	err := c.db.QueryRow(
		`SELECT diagnostics FROM clean_files WHERE path = ? AND size = ? AND mtime = ?`,
		relPath, size, mtime,
	).Scan(&diagJSON)
	if err != nil {
		return Entry{}, false
	}

	var entry Entry
	if diagJSON != "" {
		if err := json.Unmarshal([]byte(diagJSON), &entry.Diagnostics); err != nil {
			return Entry{}, false
		}
	}
	return entry, true
}

// Store records a clean result for a document. Results with missing links
// must not be stored; callers pass only clean outcomes.
func (c *Cache) Store(relPath string, size, mtime int64, entry Entry) error {
	diagJSON := ""
	if len(entry.Diagnostics) > 0 {
		data, err := json.Marshal(entry.Diagnostics)
		if err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
		diagJSON = string(data)
	}

	_, err := c.db.Exec(
		`INSERT INTO clean_files (path, size, mtime, diagnostics)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET size = excluded.size,
		                                 mtime = excluded.mtime,
		                                 diagnostics = excluded.diagnostics`,
		relPath, size, mtime, diagJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Invalidate drops the entry for a document (used when a later scan finds it
// dirty).
func (c *Cache) Invalidate(relPath string) error {
	_, err := c.db.Exec(`DELETE FROM clean_files WHERE path = ?`, relPath)
	return err
}

// initialize creates the cache schema.
func (c *Cache) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS clean_files (
			path TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			mtime INTEGER NOT NULL,
			diagnostics TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}

	_, err := c.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprintf("%d", CurrentDBVersion),
	)
	return err
}

// isSchemaCompatible checks if the cache schema matches the current version.
func isSchemaCompatible(db *sql.DB) bool {
	var version string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&version)
	if err != nil {
		return false
	}
	return version == fmt.Sprintf("%d", CurrentDBVersion)
}

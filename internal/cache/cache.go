// Package cache provides a content-addressed on-disk store for search results.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/calendar-agent/internal/types"
)

// DefaultDir is the cache directory used when none is configured.
const DefaultDir = "cache"

// Store persists search results as one JSON file per query, keyed by a hash
// of the exact query text. Entries never expire and are never invalidated.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first Put.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Key returns the cache key for a query. Identical queries always map to the
// same key; distinct queries are effectively distinct under md5's distribution.
func Key(query string) string {
	sum := md5.Sum([]byte(query))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached results for a query. Any read or decode failure is
// treated as a miss; a fresh fetch will overwrite the entry.
func (s *Store) Get(query string) ([]types.SearchResult, bool) {
	data, err := os.ReadFile(s.path(Key(query)))
	if err != nil {
		return nil, false
	}

	var results []types.SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return results, true
}

// Put writes the results for a query. Concurrent writers to the same key are
// not coordinated; each query's fetch writes to a distinct key.
func (s *Store) Put(query string, results []types.SearchResult) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if results == nil {
		results = []types.SearchResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(s.path(Key(query)), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

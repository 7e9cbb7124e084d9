package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ScanCache maps a file path to the issues found for a given content hash.
type ScanCache struct {
	Version int                   `msgpack:"version"`
	Entries map[string]CacheEntry `msgpack:"entries"`
}

// CacheEntry is the cached scan result for one file.
type CacheEntry struct {
	Hash   string  `msgpack:"hash"`
	Issues []Issue `msgpack:"issues"`
}

// ScanCacheVersion is bumped whenever the usage checks change.
const ScanCacheVersion = 1

// NewScanCache returns an empty cache at the current version.
func NewScanCache() *ScanCache {
	return &ScanCache{Version: ScanCacheVersion, Entries: map[string]CacheEntry{}}
}

// Lookup returns the cached issues for path when the content hash matches.
func (c *ScanCache) Lookup(path, hash string) ([]Issue, bool) {
	if c == nil || c.Version != ScanCacheVersion {
		return nil, false
	}
	e, ok := c.Entries[path]
	if !ok || e.Hash != hash {
		return nil, false
	}
	return e.Issues, true
}

// Put stores the issues for path under hash.
func (c *ScanCache) Put(path, hash string, issues []Issue) {
	if c.Entries == nil {
		c.Entries = map[string]CacheEntry{}
	}
	c.Entries[path] = CacheEntry{Hash: hash, Issues: issues}
}

// ContentHash returns the hex SHA-256 of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

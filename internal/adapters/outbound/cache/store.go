package cache

import (
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/abdidvp/dartlint/internal/domain"
)

// Store is a file-based implementation of domain.ScanCacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the scan cache from disk. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.ScanCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var c domain.ScanCache
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the scan cache to disk, creating directories as needed.
func (s *Store) Save(projectPath string, c *domain.ScanCache) error {
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return err
	}

	data, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(projectPath), data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".dartlint", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "scan.msgpack")
}

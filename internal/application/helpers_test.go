package application_test

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/sourcetree"
	"github.com/abdidvp/dartlint/internal/domain"
)

const projectRoot = "/app"

type staticConfig struct {
	cfg domain.ProjectConfig
	err error
}

func (c staticConfig) Load(string) (domain.ProjectConfig, error) {
	return c.cfg, c.err
}

func defaults() staticConfig { return staticConfig{cfg: domain.DefaultConfig()} }

type memHistory struct {
	mu      sync.Mutex
	entries []domain.RunEntry
}

func (h *memHistory) Save(_ string, e domain.RunEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	return nil
}

func (h *memHistory) Load(string) ([]domain.RunEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries, nil
}

type fakeGit struct{ hash string }

func (g fakeGit) CommitHash(string) (string, error) {
	if g.hash == "" {
		return "", errors.New("not a git repository")
	}
	return g.hash, nil
}

func (g fakeGit) ChangedFiles(string) ([]string, error) { return nil, nil }

type memCache struct {
	saved         *domain.ScanCache
	saves         int
	invalidations int
}

func (c *memCache) Load(string) (*domain.ScanCache, error) { return c.saved, nil }

func (c *memCache) Save(_ string, sc *domain.ScanCache) error {
	c.saved = sc
	c.saves++
	return nil
}

func (c *memCache) Invalidate(string) error {
	c.saved = nil
	c.invalidations++
	return nil
}

// spyTree wraps a real tree, counting writes and failing chosen paths.
type spyTree struct {
	domain.SourceTree
	mu        sync.Mutex
	writes    []string
	failRead  map[string]bool
	failWrite map[string]bool
}

func (s *spyTree) ReadFile(path string) ([]byte, error) {
	if s.failRead[path] {
		return nil, errors.New("permission denied")
	}
	return s.SourceTree.ReadFile(path)
}

func (s *spyTree) WriteFile(path string, data []byte) error {
	if s.failWrite[path] {
		return errors.New("read-only file system")
	}
	s.mu.Lock()
	s.writes = append(s.writes, path)
	s.mu.Unlock()
	return s.SourceTree.WriteFile(path, data)
}

func newFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for rel, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(projectRoot, filepath.FromSlash(rel)), []byte(content), 0644))
	}
	return fs
}

func spyFactory(fs afero.Fs, spy *spyTree) domain.SourceTreeFactory {
	return func(projectPath string) domain.SourceTree {
		spy.SourceTree = sourcetree.New(fs, projectPath)
		return spy
	}
}

func readFile(t *testing.T, fs afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(projectRoot, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

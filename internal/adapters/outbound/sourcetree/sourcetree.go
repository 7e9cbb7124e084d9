package sourcetree

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/abdidvp/dartlint/internal/domain"
)

var skipDirs = map[string]bool{
	".dart_tool":   true,
	".git":         true,
	".dartlint":    true,
	"build":        true,
	"node_modules": true,
}

// Tree implements domain.SourceTree on top of an afero filesystem, so tests
// can run against afero.NewMemMapFs without touching the disk.
type Tree struct {
	fs   afero.Fs
	root string
}

// New returns a tree rooted at root on fs.
func New(fs afero.Fs, root string) *Tree {
	return &Tree{fs: fs, root: root}
}

// NewOS returns a tree rooted at root on the real filesystem.
func NewOS(root string) *Tree {
	return New(afero.NewOsFs(), root)
}

// OSFactory is a domain.SourceTreeFactory backed by the real filesystem.
func OSFactory(projectPath string) domain.SourceTree {
	return NewOS(projectPath)
}

// Factory returns a domain.SourceTreeFactory on fs.
func Factory(fs afero.Fs) domain.SourceTreeFactory {
	return func(projectPath string) domain.SourceTree {
		return New(fs, projectPath)
	}
}

// List walks dir (relative to the root) in lexical order and returns the
// files ending in ext, relative to the root with forward slashes. A missing
// dir lists nothing.
func (t *Tree) List(dir, ext string, exclude []string) ([]string, error) {
	extraSkip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	start := filepath.Join(t.root, filepath.FromSlash(dir))
	var files []string

	err := afero.Walk(t.fs, start, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == start && errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}

		rel, relErr := filepath.Rel(t.root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if p != start && (skipDirs[info.Name()] || extraSkip[info.Name()] || extraSkip[rel]) {
				return filepath.SkipDir
			}
			return nil
		}

		if path.Ext(rel) == ext {
			files = append(files, rel)
		}
		return nil
	})

	return files, err
}

// ReadFile reads a file relative to the root.
func (t *Tree) ReadFile(rel string) ([]byte, error) {
	return afero.ReadFile(t.fs, t.abs(rel))
}

// WriteFile replaces a file relative to the root, keeping its permissions.
func (t *Tree) WriteFile(rel string, data []byte) error {
	p := t.abs(rel)
	perm := os.FileMode(0o644)
	if info, err := t.fs.Stat(p); err == nil {
		perm = info.Mode().Perm()
	}
	return afero.WriteFile(t.fs, p, data, perm)
}

func (t *Tree) abs(rel string) string {
	return filepath.Join(t.root, filepath.FromSlash(rel))
}

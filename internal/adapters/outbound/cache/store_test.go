package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/dartlint/internal/domain"
)

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	original := domain.NewScanCache()
	original.Put("lib/main.dart", "abc123", []domain.Issue{{
		Severity: domain.SeverityWarning,
		Category: domain.CategoryUnusedImport,
		File:     "lib/main.dart",
		Line:     1,
		Message:  "dart:io imported but not used",
	}})

	require.NoError(t, store.Save(projectPath, original))

	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	issues, ok := loaded.Lookup("lib/main.dart", "abc123")
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "dart:io imported but not used", issues[0].Message)
	assert.Equal(t, 1, issues[0].Line)
}

func TestStore_LoadNonExistent(t *testing.T) {
	loaded, err := cache.New().Load(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadCorrupt(t *testing.T) {
	projectPath := t.TempDir()
	dir := filepath.Join(projectPath, ".dartlint", "cache")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan.msgpack"), []byte{0xc1}, 0644))

	_, err := cache.New().Load(projectPath)
	assert.Error(t, err)
}

func TestStore_Invalidate(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Save(projectPath, domain.NewScanCache()))
	require.NoError(t, store.Invalidate(projectPath))

	loaded, err := store.Load(projectPath)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	// Invalidating twice is fine.
	assert.NoError(t, store.Invalidate(projectPath))
}

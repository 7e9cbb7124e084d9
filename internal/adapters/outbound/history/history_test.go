package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/history"
	"github.com/abdidvp/dartlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		Timestamp:  "2026-10-19T10:00:00Z",
		Command:    "scan",
		CommitHash: "abc1234",
		Files:      12,
		Issues:     3,
	}

	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Issues)
	assert.Equal(t, "abc1234", entries[0].CommitHash)
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t1", Command: "scan", Issues: 7}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t2", Command: "fix", Modified: 4}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t3", Command: "scan", Issues: 1}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "fix", entries[1].Command)
	assert.Equal(t, 4, entries[1].Modified)
	assert.Equal(t, 1, entries[2].Issues)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CreatesDirectory(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "deep", "nested")
	h := history.New()

	require.NoError(t, h.Save(nestedDir, domain.RunEntry{Timestamp: "t1", Command: "scan"}))

	entries, err := h.Load(nestedDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistory_Recent(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	for _, ts := range []string{"t1", "t2", "t3"} {
		require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: ts, Command: "scan"}))
	}

	entries, err := h.Recent(dir, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "t2", entries[0].Timestamp)
	assert.Equal(t, "t3", entries[1].Timestamp)

	all, err := h.Recent(dir, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistory_DropsOldestPastCap(t *testing.T) {
	dir := t.TempDir()
	h := &history.Store{MaxEntries: 2}
	for _, ts := range []string{"t1", "t2", "t3"} {
		require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: ts, Command: "fix"}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "t2", entries[0].Timestamp)
	assert.NoFileExists(t, filepath.Join(dir, ".dartlint", "history", "runs.json.tmp"))
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".dartlint", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0o755))
	require.NoError(t, os.WriteFile(fp, []byte("{not json"), 0o644))

	_, err := history.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

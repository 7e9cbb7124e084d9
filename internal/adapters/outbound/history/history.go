package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/dartlint/internal/domain"
)

// DefaultMaxEntries bounds runs.json; the oldest runs are dropped first.
const DefaultMaxEntries = 500

// Store keeps the run log of a project in .dartlint/history/runs.json.
type Store struct {
	MaxEntries int
}

func New() *Store {
	return &Store{MaxEntries: DefaultMaxEntries}
}

func runsPath(projectPath string) string {
	return filepath.Join(projectPath, ".dartlint", "history", "runs.json")
}

// Save appends entry to the log. The file is replaced through a rename so a
// reader never sees a half-written log.
func (s *Store) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := s.Load(projectPath)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if s.MaxEntries > 0 && len(entries) > s.MaxEntries {
		entries = entries[len(entries)-s.MaxEntries:]
	}

	fp := runsPath(projectPath)
	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := fp + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp, fp)
}

// Load returns every recorded run, oldest first. A project without history
// yields nil.
func (s *Store) Load(projectPath string) ([]domain.RunEntry, error) {
	return s.Recent(projectPath, 0)
}

// Recent returns the last n runs, oldest first; n <= 0 means all of them.
func (s *Store) Recent(projectPath string, n int) ([]domain.RunEntry, error) {
	fp := runsPath(projectPath)
	data, err := os.ReadFile(fp)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fp, err)
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

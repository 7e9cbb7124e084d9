package application

import (
	"log/slog"
	"time"

	"github.com/abdidvp/dartlint/internal/domain"
)

// workerCount picks the explicit option, then the project setting, never
// less than one.
func workerCount(opt int, cfg domain.ProjectConfig) int {
	n := opt
	if n <= 0 {
		n = cfg.Workers
	}
	if n <= 0 {
		n = 1
	}
	return n
}

// restrict keeps the files named in only, in their original order. A nil
// only keeps everything.
func restrict(files, only []string) []string {
	if only == nil {
		return files
	}
	keep := make(map[string]bool, len(only))
	for _, f := range only {
		keep[f] = true
	}
	var out []string
	for _, f := range files {
		if keep[f] {
			out = append(out, f)
		}
	}
	return out
}

// recorder saves run entries with the current commit hash. Both
// dependencies are optional and failures only get logged.
type recorder struct {
	history domain.RunHistory
	git     domain.GitInfo
	now     func() time.Time
}

func (r recorder) commitHash(projectPath string) string {
	if r.git == nil {
		return ""
	}
	hash, err := r.git.CommitHash(projectPath)
	if err != nil {
		slog.Debug("no commit hash", "path", projectPath, "error", err)
		return ""
	}
	return hash
}

func (r recorder) record(projectPath string, entry domain.RunEntry) {
	if r.history == nil {
		return
	}
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	entry.Timestamp = now().UTC().Format(time.RFC3339)
	if err := r.history.Save(projectPath, entry); err != nil {
		slog.Warn("saving run history", "path", projectPath, "error", err)
	}
}

package domain

// SourceTree is the only way services reach the files they check and
// rewrite. Paths are relative to the tree root and use forward slashes.
type SourceTree interface {
	// List returns the files under dir with the given extension, in
	// traversal order. Directories named in exclude are skipped.
	List(dir, ext string, exclude []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// SourceTreeFactory opens a SourceTree rooted at a project path.
type SourceTreeFactory func(projectPath string) SourceTree

// ConfigLoader loads project configuration from a project directory.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ScanCacheStore persists per-file scan results between runs.
type ScanCacheStore interface {
	Load(projectPath string) (*ScanCache, error)
	Save(projectPath string, cache *ScanCache) error
	Invalidate(projectPath string) error
}

// RunHistory stores one entry per scan or fix run.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo exposes the repository state a run may depend on.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}

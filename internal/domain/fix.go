package domain

// FixResult summarizes a rewrite run. Modified keeps enumeration order.
type FixResult struct {
	Root     string       `json:"root"`
	Files    int          `json:"files"`
	DryRun   bool         `json:"dry_run"`
	Modified []string     `json:"modified"`
	Failures []FixFailure `json:"failures,omitempty"`
	Changes  []FileChange `json:"changes,omitempty"`
}

// FixFailure records a file that could not be processed.
type FixFailure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// FileChange lists the rules that changed a file and, on request, the diff.
type FileChange struct {
	Path  string   `json:"path"`
	Rules []string `json:"rules"`
	Diff  string   `json:"diff,omitempty"`
}

// FixOptions controls a rewrite run.
type FixOptions struct {
	DryRun  bool     `json:"dry_run"`
	Diff    bool     `json:"diff"`
	Only    []string `json:"only,omitempty"`
	Workers int      `json:"workers,omitempty"`
}

// ScanOptions controls a scan run.
type ScanOptions struct {
	Only    []string `json:"only,omitempty"`
	Workers int      `json:"workers,omitempty"`
	NoCache bool     `json:"no_cache"`
}

// MaxListedFixes caps the modified paths printed in a fix summary.
const MaxListedFixes = 20

package domain

// SourceFile is a file path (relative to the project root) and its full text.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"-"`
}

// Issue is a single finding produced by the usage scanner.
type Issue struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

// SeverityWarning is the only severity the usage checks report.
const SeverityWarning = "warning"

const (
	CategoryUnusedImport   = "unused_import"
	CategoryUnusedVariable = "unused_variable"
)

// FileReport groups the issues found in one file.
type FileReport struct {
	File   string  `json:"file"`
	Issues []Issue `json:"issues"`
}

// ScanReport is the ordered result of a scan run. Only files with at least
// one issue appear in Reports.
type ScanReport struct {
	Root        string       `json:"root"`
	Files       int          `json:"files"`
	Reports     []FileReport `json:"reports"`
	TotalIssues int          `json:"total_issues"`
	CommitHash  string       `json:"commit_hash,omitempty"`
}

// Clean reports whether the scan found nothing.
func (r *ScanReport) Clean() bool { return r.TotalIssues == 0 }

// Add appends a file report, ignoring files without issues.
func (r *ScanReport) Add(file string, issues []Issue) {
	if len(issues) == 0 {
		return
	}
	r.Reports = append(r.Reports, FileReport{File: file, Issues: issues})
	r.TotalIssues += len(issues)
}

// IssuesByFile returns the structured file -> messages mapping.
func (r *ScanReport) IssuesByFile() map[string][]string {
	out := make(map[string][]string, len(r.Reports))
	for _, fr := range r.Reports {
		for _, issue := range fr.Issues {
			out[fr.File] = append(out[fr.File], issue.Message)
		}
	}
	return out
}

// RunEntry is one recorded scan or fix run.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	Command    string `json:"command"`
	CommitHash string `json:"commit_hash,omitempty"`
	Files      int    `json:"files"`
	Issues     int    `json:"issues,omitempty"`
	Modified   int    `json:"modified,omitempty"`
	Failed     int    `json:"failed,omitempty"`
}

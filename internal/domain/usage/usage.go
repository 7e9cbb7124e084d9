// Package usage detects likely-dead Dart code with substring heuristics.
// The checks deliberately do not parse Dart; their false positives and
// false negatives are part of their behavior.
package usage

import "github.com/abdidvp/dartlint/internal/domain"

// Check runs the import check followed by the declaration check.
func Check(file domain.SourceFile) []domain.Issue {
	issues := CheckImports(file)
	return append(issues, CheckVariables(file)...)
}

// CheckWith runs Check and drops the categories cfg skips.
func CheckWith(file domain.SourceFile, cfg domain.ProjectConfig) []domain.Issue {
	return Filter(Check(file), cfg)
}

// Filter drops issues whose category cfg skips, keeping order.
func Filter(issues []domain.Issue, cfg domain.ProjectConfig) []domain.Issue {
	if len(cfg.SkipChecks) == 0 {
		return issues
	}
	var out []domain.Issue
	for _, issue := range issues {
		if !cfg.IsCheckSkipped(issue.Category) {
			out = append(out, issue)
		}
	}
	return out
}

package usage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdidvp/dartlint/internal/domain"
)

var declPattern = regexp.MustCompile(`(?m)^\s*(final|var|const)\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*=`)

// CheckVariables reports declarations whose name never appears again after
// the declaration. Scoping is ignored: any later occurrence of the name,
// including an unrelated shadowing declaration, counts as a use.
func CheckVariables(file domain.SourceFile) []domain.Issue {
	var issues []domain.Issue

	for _, m := range declPattern.FindAllStringSubmatchIndex(file.Content, -1) {
		name := file.Content[m[4]:m[5]]
		if strings.Contains(file.Content[m[1]:], name) {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryUnusedVariable,
			File:     file.Path,
			Line:     lineAt(file.Content, m[2]),
			Message:  fmt.Sprintf("Variable '%s' declared but not used", name),
		})
	}

	return issues
}

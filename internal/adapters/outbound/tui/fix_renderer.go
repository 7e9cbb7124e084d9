package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/dartlint/internal/domain"
)

// RenderFixResult renders the per-file outcome lines of a fix run followed by
// the summary. At most domain.MaxListedFixes modified paths are listed.
func RenderFixResult(result *domain.FixResult) string {
	var b strings.Builder

	verb := "Fixed"
	if result.DryRun {
		verb = "Would fix"
	}

	rules := make(map[string][]string, len(result.Changes))
	diffs := make(map[string]string, len(result.Changes))
	for _, c := range result.Changes {
		rules[c.Path] = c.Rules
		diffs[c.Path] = c.Diff
	}

	for _, path := range result.Modified {
		line := passStyle.Render("✓") + fmt.Sprintf(" %s: %s", verb, path)
		if names := rules[path]; len(names) > 0 {
			line += "  " + faintStyle.Render(strings.Join(names, ", "))
		}
		b.WriteString(line + "\n")
		if d := diffs[path]; d != "" {
			b.WriteString(renderDiff(d))
		}
	}
	for _, f := range result.Failures {
		b.WriteString(failStyle.Render("✗") + fmt.Sprintf(" Error in %s: %s\n", f.Path, f.Message))
	}

	b.WriteString("\n" + titleStyle.Render("=== SUMMARY ===") + "\n")
	if result.DryRun {
		b.WriteString(dimStyle.Render("(dry run, no files written)") + "\n")
	}
	b.WriteString(fmt.Sprintf("Total files fixed: %d\n", len(result.Modified)))

	if len(result.Modified) > 0 {
		b.WriteString("\nModified files:\n")
		for i, path := range result.Modified {
			if i == domain.MaxListedFixes {
				break
			}
			b.WriteString("  - " + path + "\n")
		}
		if extra := len(result.Modified) - domain.MaxListedFixes; extra > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", extra)) + "\n")
		}
	}

	return b.String()
}

func renderDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString("    " + titleStyle.Render(line) + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString("    " + passStyle.Render(line) + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString("    " + failStyle.Render(line) + "\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString("    " + dimStyle.Render(line) + "\n")
		default:
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

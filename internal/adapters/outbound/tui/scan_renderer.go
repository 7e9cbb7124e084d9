package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/dartlint/internal/domain"
)

// RenderScanReport renders a ScanReport in the console layout: one block per
// file with issues, then the summary and the verdict line.
func RenderScanReport(report *domain.ScanReport) string {
	var b strings.Builder

	b.WriteString(banner("🔍 dartlint", "Unused code scan"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d files scanned", report.Files)))
	b.WriteString("\n")

	for _, fr := range report.Reports {
		b.WriteString("\n📁 " + fileStyle.Render(fr.File) + "\n")
		for _, issue := range fr.Issues {
			b.WriteString("   ⚠️  " + warnStyle.Render(issue.Message) + "\n")
		}
	}

	b.WriteString("\n" + separatorLine + "\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("📊 SUMMARY: %d issues found", report.TotalIssues)))
	b.WriteString("\n\n")

	if report.Clean() {
		b.WriteString(passStyle.Render("✅ No unused code found!"))
	} else {
		b.WriteString(failStyle.Render("❌ Found issues that may produce analyzer warnings"))
	}
	b.WriteString("\n")

	return b.String()
}

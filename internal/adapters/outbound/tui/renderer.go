package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/dartlint/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	fileStyle     = lipgloss.NewStyle().Foreground(fg).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("═", 60))
)

func banner(title, subtitle string) string {
	return boxStyle.Render(headerStyle.Render(title) + "\n" + dimStyle.Render(subtitle))
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	if hash == "" {
		return "·······"
	}
	return hash
}

// RenderHistory formats recorded runs for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	var lastScan *domain.RunEntry
	for i := range entries {
		e := entries[i]
		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		var summary string
		switch e.Command {
		case "fix":
			summary = fmt.Sprintf("fixed %d/%d files", e.Modified, e.Files)
			if e.Failed > 0 {
				summary += "  " + failStyle.Render(fmt.Sprintf("%d failed", e.Failed))
			}
		default:
			style := passStyle
			if e.Issues > 0 {
				style = warnStyle
			}
			summary = style.Render(fmt.Sprintf("%d issues", e.Issues)) +
				dimStyle.Render(fmt.Sprintf(" in %d files", e.Files))
		}

		line := fmt.Sprintf("  %s  %s  %-4s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(shortHash(e.CommitHash)),
			e.Command,
			summary,
		)

		if e.Command == "scan" {
			if lastScan != nil {
				diff := e.Issues - lastScan.Issues
				if diff < 0 {
					line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
				} else if diff > 0 {
					line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
				}
			}
			lastScan = &entries[i]
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

package tui

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/abdidvp/dartlint/internal/domain/rewrite"
)

// RenderRules renders the rewrite rule table in execution order. Rules named
// in disabled are marked as such.
func RenderRules(rules []rewrite.Rule, disabled []string) string {
	off := make(map[string]bool, len(disabled))
	for _, d := range disabled {
		off[d] = true
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "Rule", "Description", "Enabled"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	for i, r := range rules {
		enabled := "yes"
		if off[r.Name()] {
			enabled = "no"
		}
		table.Append([]string{fmt.Sprintf("%d", i+1), r.Name(), r.Description(), enabled})
	}
	table.Render()

	return buf.String()
}

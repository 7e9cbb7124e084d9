package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/config"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/dartlint/internal/domain/rewrite"
)

type ruleRow struct {
	Order       int    `json:"order"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the rewrite rules in execution order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectPath(args)
			if err != nil {
				return err
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			rules := rewrite.Rules()
			if jsonOutput {
				rows := make([]ruleRow, len(rules))
				for i, r := range rules {
					rows[i] = ruleRow{
						Order:       i + 1,
						Name:        r.Name(),
						Description: r.Description(),
						Enabled:     !cfg.IsRuleDisabled(r.Name()),
					}
				}
				return renderJSON(cmd, rows)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(rules, cfg.DisabledRules))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the rules as JSON")

	return cmd
}

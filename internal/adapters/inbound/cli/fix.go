package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/dartlint/internal/domain"
)

func newFixCmd(v *viper.Viper) *cobra.Command {
	var (
		dryRun     bool
		showDiff   bool
		jsonOutput bool
		changed    bool
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Rewrite source files to silence known analyzer warnings",
		Long: "Apply the rewrite rule table (see 'dartlint rules') to every source file in traversal order.\n" +
			"Files are written back only when a rule changed them. Failures on single files are reported\n" +
			"and do not stop the run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectPath(args)
			if err != nil {
				return err
			}

			opts := domain.FixOptions{
				DryRun:  dryRun,
				Diff:    showDiff,
				Workers: workers(v),
			}
			if changed {
				if opts.Only, err = changedFiles(absPath); err != nil {
					return err
				}
			}

			result, err := newFixService().Fix(cmd.Context(), absPath, opts)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing files")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show a unified diff per modified file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only fix files changed in the git worktree")

	return cmd
}

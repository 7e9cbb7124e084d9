package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/config"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/tui"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/watcher"
	"github.com/abdidvp/dartlint/internal/domain"
)

func newScanCmd(v *viper.Viper) *cobra.Command {
	var (
		jsonOutput bool
		changed    bool
		noCache    bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Report unused dart: imports and unused declarations",
		Long: "Scan the project's source directory (lib/ by default) for dart: imports whose usage tokens never\n" +
			"appear and for final/var/const declarations whose name never reappears. The checks are text\n" +
			"heuristics, not a Dart parser.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectPath(args)
			if err != nil {
				return err
			}

			svc := newScanService()
			run := func(ctx context.Context) error {
				opts := domain.ScanOptions{Workers: workers(v), NoCache: noCache}
				if changed {
					if opts.Only, err = changedFiles(absPath); err != nil {
						return err
					}
				}

				report, err := svc.Scan(ctx, absPath, opts)
				if err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}

				if jsonOutput {
					return renderJSON(cmd, report)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScanReport(report))
				return nil
			}

			if err := run(cmd.Context()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			root := filepath.Join(absPath, filepath.FromSlash(cfg.SourceDir))
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s for %s changes (Ctrl+C to stop)\n", root, cfg.Extension)

			return watcher.New(cfg.Extension).Watch(ctx, root, func() {
				if err := run(ctx); err != nil {
					slog.Error("watch rescan failed", "path", absPath, "error", err)
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only scan files changed in the git worktree")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Discard the scan cache and check every file")
	cmd.Flags().BoolVar(&watch, "watch", false, "Rescan whenever a source file changes")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/config"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/history"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/sourcetree"
	"github.com/abdidvp/dartlint/internal/application"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	v := newConfig()

	cmd := &cobra.Command{
		Use:   "dartlint",
		Short: "Find and silence Dart analyzer warnings",
		Long: "dartlint scans a Dart/Flutter source tree for unused dart: imports and unused declarations,\n" +
			"and rewrites source files with an ordered table of rules that silence common analyzer diagnostics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogger(v)
		},
	}

	cmd.PersistentFlags().BoolP(verboseFlagName, "v", false, "log at debug level")
	bindFlagToConfig(v, cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().String(logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(v, cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().Int(workersFlagName, 0, "files processed concurrently (0 uses the project setting)")
	bindFlagToConfig(v, cmd.PersistentFlags().Lookup(workersFlagName), workersKey)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd(v))
	cmd.AddCommand(newFixCmd(v))
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func projectPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}

func newScanService() *application.ScanService {
	return application.NewScanService(
		sourcetree.OSFactory,
		config.New(),
		cache.New(),
		history.New(),
		gitinfo.New(),
	)
}

func newFixService() *application.FixService {
	return application.NewFixService(
		sourcetree.OSFactory,
		config.New(),
		history.New(),
		gitinfo.New(),
	)
}

// changedFiles lists the worktree changes of absPath. The result is never
// nil so an unchanged tree restricts a run to nothing.
func changedFiles(absPath string) ([]string, error) {
	git := gitinfo.New()
	if !git.IsGitRepo(absPath) {
		return nil, fmt.Errorf("--changed needs a git repository: %s is not inside one", absPath)
	}
	files, err := git.ChangedFiles(absPath)
	if err != nil {
		return nil, fmt.Errorf("--changed needs a git repository: %w", err)
	}
	if files == nil {
		files = []string{}
	}
	return files, nil
}

func workers(v *viper.Viper) int {
	return v.GetInt(workersKey)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

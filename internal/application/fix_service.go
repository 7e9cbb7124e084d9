package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/dartlint/internal/domain"
	"github.com/abdidvp/dartlint/internal/domain/rewrite"
)

// FixService orchestrates the rewrite pipeline:
// load config → list sources → apply rule table per file → write changed files.
type FixService struct {
	trees        domain.SourceTreeFactory
	configLoader domain.ConfigLoader
	recorder
}

// NewFixService wires a fix service. history and git may be nil.
func NewFixService(
	trees domain.SourceTreeFactory,
	configLoader domain.ConfigLoader,
	history domain.RunHistory,
	git domain.GitInfo,
) *FixService {
	return &FixService{
		trees:        trees,
		configLoader: configLoader,
		recorder:     recorder{history: history, git: git},
	}
}

type fixed struct {
	changed bool
	rules   []string
	diff    string
	err     error
}

// Fix rewrites every source file in traversal order. Per-file failures are
// logged and recorded without stopping the run; only config and listing
// errors are returned.
func (s *FixService) Fix(ctx context.Context, projectPath string, opts domain.FixOptions) (*domain.FixResult, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tree := s.trees(projectPath)
	files, err := tree.List(cfg.SourceDir, cfg.Extension, cfg.ExcludePaths)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", cfg.SourceDir, err)
	}
	files = restrict(files, opts.Only)

	engine := rewrite.New(cfg.DisabledRules...)
	results := make([]fixed, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workerCount(opts.Workers, cfg), max(len(files), 1)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fixFile(tree, engine, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.FixResult{Root: projectPath, Files: len(files), DryRun: opts.DryRun}
	for i, path := range files {
		r := results[i]
		switch {
		case r.err != nil:
			slog.Error("fix failed", "path", path, "error", r.err)
			result.Failures = append(result.Failures, domain.FixFailure{Path: path, Message: r.err.Error()})
		case r.changed:
			slog.Debug("fixed", "path", path, "rules", r.rules)
			result.Modified = append(result.Modified, path)
			result.Changes = append(result.Changes, domain.FileChange{Path: path, Rules: r.rules, Diff: r.diff})
		}
	}

	if !opts.DryRun {
		s.record(projectPath, domain.RunEntry{
			Command:    "fix",
			CommitHash: s.commitHash(projectPath),
			Files:      result.Files,
			Modified:   len(result.Modified),
			Failed:     len(result.Failures),
		})
	}

	return result, nil
}

func fixFile(tree domain.SourceTree, engine *rewrite.Engine, path string, opts domain.FixOptions) fixed {
	data, err := tree.ReadFile(path)
	if err != nil {
		return fixed{err: err}
	}

	original := string(data)
	content, rules := engine.Apply(original)
	if content == original {
		return fixed{}
	}

	out := fixed{changed: true, rules: rules}
	if opts.Diff {
		out.diff, err = unifiedDiff(path, original, content)
		if err != nil {
			return fixed{err: fmt.Errorf("diffing: %w", err)}
		}
	}
	if !opts.DryRun {
		if err := tree.WriteFile(path, []byte(content)); err != nil {
			return fixed{err: err}
		}
	}
	return out
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

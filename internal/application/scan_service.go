package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/dartlint/internal/domain"
	"github.com/abdidvp/dartlint/internal/domain/usage"
)

// ScanService orchestrates the usage scan:
// load config → list sources → check each file (cached) → ordered report.
type ScanService struct {
	trees        domain.SourceTreeFactory
	configLoader domain.ConfigLoader
	cache        domain.ScanCacheStore
	recorder
}

// NewScanService wires a scan service. cache, history and git may be nil.
func NewScanService(
	trees domain.SourceTreeFactory,
	configLoader domain.ConfigLoader,
	cache domain.ScanCacheStore,
	history domain.RunHistory,
	git domain.GitInfo,
) *ScanService {
	return &ScanService{
		trees:        trees,
		configLoader: configLoader,
		cache:        cache,
		recorder:     recorder{history: history, git: git},
	}
}

type scanned struct {
	hash   string
	issues []domain.Issue
	cached bool
}

// Scan checks every source file of the project in sorted path order. The
// first read error aborts the run.
func (s *ScanService) Scan(ctx context.Context, projectPath string, opts domain.ScanOptions) (*domain.ScanReport, error) {
	// 0. Load config
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 1. List and order sources
	tree := s.trees(projectPath)
	files, err := tree.List(cfg.SourceDir, cfg.Extension, cfg.ExcludePaths)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", cfg.SourceDir, err)
	}
	sort.Strings(files)
	files = restrict(files, opts.Only)

	// 2. Previous results; NoCache drops them
	var prev *domain.ScanCache
	if s.cache != nil && opts.NoCache {
		if err := s.cache.Invalidate(projectPath); err != nil {
			slog.Warn("invalidating scan cache", "path", projectPath, "error", err)
		}
	}
	if s.cache != nil && !opts.NoCache {
		prev, err = s.cache.Load(projectPath)
		if err != nil {
			slog.Warn("ignoring unreadable scan cache", "path", projectPath, "error", err)
			prev = nil
		}
	}

	// 3. Check files; results[i] belongs to files[i]
	results := make([]scanned, len(files))
	workers := workerCount(opts.Workers, cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, max(len(files), 1)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := tree.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			hash := domain.ContentHash(data)
			if issues, ok := prev.Lookup(path, hash); ok {
				results[i] = scanned{hash: hash, issues: issues, cached: true}
				return nil
			}
			issues := usage.Check(domain.SourceFile{Path: path, Content: string(data)})
			results[i] = scanned{hash: hash, issues: issues}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 4. Assemble the report in sorted order
	report := &domain.ScanReport{Root: projectPath, Files: len(files)}
	hits := 0
	for i, path := range files {
		if results[i].cached {
			hits++
		}
		report.Add(path, usage.Filter(results[i].issues, cfg))
	}
	slog.Debug("scan complete", "files", len(files), "cache_hits", hits, "issues", report.TotalIssues)

	// 5. Persist cache and history
	if s.cache != nil && !opts.NoCache {
		next := domain.NewScanCache()
		if opts.Only != nil && prev != nil && prev.Version == domain.ScanCacheVersion {
			for k, v := range prev.Entries {
				next.Entries[k] = v
			}
		}
		for i, path := range files {
			next.Put(path, results[i].hash, results[i].issues)
		}
		if err := s.cache.Save(projectPath, next); err != nil {
			slog.Warn("saving scan cache", "path", projectPath, "error", err)
		}
	}

	report.CommitHash = s.commitHash(projectPath)
	s.record(projectPath, domain.RunEntry{
		Command:    "scan",
		CommitHash: report.CommitHash,
		Files:      report.Files,
		Issues:     report.TotalIssues,
	})

	return report, nil
}

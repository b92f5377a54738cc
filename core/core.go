// Package core has core logic for loading, scoring and ranking companies.
package core

import (
	"context"
	"os"
	"time"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/internal/loader"
	"github.com/huangsam/integral/internal/outwriter"
	"github.com/huangsam/integral/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteRank runs the full ranking pipeline and prints the result.
// It serves as the main entry point for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := GetRankResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter(os.Stderr)
	if !shouldSuppressHeader(ctx) {
		ow.WriteHeader(cfg, result.Sources)
	}
	return ow.WriteRank(result, cfg, time.Since(start))
}

// ExecuteMerge prints the unified table built from every supplied source.
func ExecuteMerge(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	unified, err := GetUnifiedTable(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(os.Stderr).WriteUnified(unified, cfg)
}

// ExecuteSources prints each source table on its own, reporting the ones not supplied.
func ExecuteSources(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	views, err := GetSourceViews(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(os.Stderr).WriteSources(views, cfg)
}

// GetSourceViews loads every configured source without merging.
func GetSourceViews(ctx context.Context, cfg *contract.Config) ([]outwriter.SourceView, error) {
	views := make([]outwriter.SourceView, 0, len(schema.AllGroups))
	for _, src := range configuredSources(cfg) {
		view := outwriter.SourceView{SourceInfo: schema.SourceInfo{Group: src.Group, Path: src.Path}}
		if src.Path != "" {
			table, err := loader.Load(ctx, src, cfg.Key)
			if err != nil {
				return nil, err
			}
			view.Loaded = true
			view.Rows = len(table.Rows)
			view.Table = &table
		}
		views = append(views, view)
	}
	return views, nil
}

// ExecuteGroups prints how the unified columns are classified into metric groups.
func ExecuteGroups(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	result, err := GetClassification(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(os.Stderr).WriteGroups(result, cfg)
}

// ExecuteWeights prints the vocabulary, weights and composite formula in use.
// It does not load any source.
func ExecuteWeights(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	return outwriter.NewOutWriter(os.Stderr).WriteMetrics(cfg)
}

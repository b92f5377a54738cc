package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/integral/core/algo"
	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/internal/loader"
	"github.com/huangsam/integral/schema"
	"github.com/rs/zerolog/log"
)

// configuredSources lists the configured sources in scoring order.
func configuredSources(cfg *contract.Config) []loader.Source {
	sources := make([]loader.Source, 0, len(schema.AllGroups))
	for _, group := range schema.AllGroups {
		sources = append(sources, loader.Source{Group: group, Path: cfg.SourcePath(group)})
	}
	return sources
}

// loadSources reads every configured source and describes what was loaded.
func loadSources(ctx context.Context, cfg *contract.Config) ([]schema.Table, []schema.SourceInfo, error) {
	sources := configuredSources(cfg)
	tables, err := loader.LoadAll(ctx, sources, cfg.Key)
	if err != nil {
		return nil, nil, err
	}

	infos := make([]schema.SourceInfo, len(sources))
	for i, src := range sources {
		infos[i] = schema.SourceInfo{
			Group:  src.Group,
			Path:   src.Path,
			Rows:   len(tables[i].Rows),
			Loaded: src.Path != "",
		}
		if src.Path != "" && tables[i].IsEmpty() {
			log.Debug().Str("group", string(src.Group)).Str("path", src.Path).Msg("source is empty and is skipped")
		}
	}
	return tables, infos, nil
}

// buildUnified loads the sources and merges them on the key column.
func buildUnified(ctx context.Context, cfg *contract.Config) (schema.Table, []schema.SourceInfo, error) {
	if !cfg.HasSources() {
		return schema.Table{}, nil, fmt.Errorf("no source supplied. Set at least one of --financial, --media, --reputation: %w", schema.ErrEmptyInput)
	}
	tables, infos, err := loadSources(ctx, cfg)
	if err != nil {
		return schema.Table{}, nil, err
	}
	unified, err := algo.Merge(tables, cfg.Key)
	if err != nil {
		return schema.Table{}, nil, fmt.Errorf("failed to merge sources: %w", err)
	}
	log.Debug().Int("rows", len(unified.Rows)).Int("columns", len(unified.Columns)).Msg("built unified table")
	return unified, infos, nil
}

// classify assigns the unified table's feature columns to metric groups.
func classify(unified schema.Table, cfg *contract.Config) schema.ClassificationResult {
	groups := algo.Classify(algo.FeatureColumns(unified, cfg.Key), cfg.Vocabulary)

	seen := make(map[string]bool)
	var nonNumeric []string
	for _, group := range schema.AllGroups {
		columns := groups.Columns(group)
		if len(columns) == 0 {
			log.Debug().Str("group", string(group)).Msg("no matching columns, group score is neutral")
		}
		for _, c := range columns {
			if seen[c] {
				continue
			}
			seen[c] = true
			if idx := unified.ColumnIndex(c); idx >= 0 && !unified.IsNumericColumn(idx) {
				nonNumeric = append(nonNumeric, c)
			}
		}
	}

	return schema.ClassificationResult{Key: cfg.Key, Groups: groups, NonNumeric: nonNumeric}
}

// GetRankResults runs the whole pipeline: load, merge, classify, score and rank.
// When a history store is configured the run and its scores are recorded;
// tracking failures are reported as warnings and never fail the ranking.
func GetRankResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.RankingResult, error) {
	startTime := time.Now()

	unified, infos, err := buildUnified(ctx, cfg)
	if err != nil {
		return schema.RankingResult{}, err
	}
	classification := classify(unified, cfg)

	entities, err := algo.Score(unified, cfg.Key, classification.Groups, cfg.Weights)
	if err != nil {
		return schema.RankingResult{}, fmt.Errorf("failed to score entities: %w", err)
	}
	if len(entities) > 0 && entities[0].Integral100 == entities[len(entities)-1].Integral100 {
		log.Debug().Int("entities", len(entities)).Msg("all composites are equal, every entity scores 50")
	}

	recordHistory(startTime, cfg, mgr, entities)

	return schema.RankingResult{
		Sources:  infos,
		Groups:   classification.Groups,
		Weights:  cfg.Weights,
		Unified:  unified,
		Total:    len(entities),
		Entities: algo.RankEntities(entities, cfg.ResultLimit),
	}, nil
}

// historyStore returns the configured store, tolerating a nil manager.
func historyStore(mgr contract.HistoryManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// recordHistory stores the run and the full ranking. Uploaded tables are never stored.
func recordHistory(startTime time.Time, cfg *contract.Config, mgr contract.HistoryManager, entities []schema.EntityResult) {
	store := historyStore(mgr)
	if store == nil {
		return
	}

	sources := make(map[string]string)
	for _, group := range schema.AllGroups {
		if p := cfg.SourcePath(group); p != "" {
			sources[string(group)] = p
		}
	}
	configParams := map[string]any{
		"key":          cfg.Key,
		"sources":      sources,
		"weights":      cfg.Weights,
		"raw_weights":  map[string]float64{"financial": cfg.WeightFinancial, "media": cfg.WeightMedia, "reputation": cfg.WeightReputation},
		"vocabulary":   cfg.Vocabulary,
		"result_limit": cfg.ResultLimit,
	}

	runID, err := store.BeginRun(startTime, configParams)
	if err != nil {
		contract.LogWarn("Ranking history initialization failed", err)
		return
	}
	if runID <= 0 {
		return // none backend
	}
	if err := store.RecordEntityScores(runID, schema.EnrichEntities(entities)); err != nil {
		contract.LogWarn("Failed to record entity scores", err)
	}
	if err := store.EndRun(runID, time.Now(), len(entities)); err != nil {
		contract.LogWarn("Failed to finalize ranking history", err)
	}
}

// GetUnifiedTable loads and merges the sources without scoring.
func GetUnifiedTable(ctx context.Context, cfg *contract.Config) (schema.Table, error) {
	unified, _, err := buildUnified(ctx, cfg)
	return unified, err
}

// GetClassification loads and merges the sources and classifies the unified columns.
func GetClassification(ctx context.Context, cfg *contract.Config) (schema.ClassificationResult, error) {
	unified, _, err := buildUnified(ctx, cfg)
	if err != nil {
		return schema.ClassificationResult{}, err
	}
	return classify(unified, cfg), nil
}

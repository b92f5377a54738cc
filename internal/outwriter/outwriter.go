// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	header io.Writer
}

// NewOutWriter creates a new instance of the output writer. Headers go to header.
func NewOutWriter(header io.Writer) *OutWriter {
	return &OutWriter{header: header}
}

// WriteHeader prints the ranking header.
func (ow *OutWriter) WriteHeader(cfg *contract.Config, sources []schema.SourceInfo) {
	LogRankHeader(ow.header, cfg, sources)
}

// WriteRank prints the ranking using the configured output format.
func (ow *OutWriter) WriteRank(result schema.RankingResult, cfg *contract.Config, duration time.Duration) error {
	return WriteRankResults(result, cfg, duration)
}

// WriteUnified prints the unified table using the configured output format.
func (ow *OutWriter) WriteUnified(table schema.Table, cfg *contract.Config) error {
	return WriteUnifiedTable(table, cfg)
}

// WriteSources prints every source table using the configured output format.
func (ow *OutWriter) WriteSources(views []SourceView, cfg *contract.Config) error {
	return WriteSourceTables(views, cfg)
}

// WriteGroups prints the column classification using the configured output format.
func (ow *OutWriter) WriteGroups(result schema.ClassificationResult, cfg *contract.Config) error {
	return WriteColumnGroups(result, cfg)
}

// WriteMetrics prints the scoring definition using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsDefinitions(cfg)
}

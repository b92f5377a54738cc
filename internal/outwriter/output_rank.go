package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/internal/parquet"
	"github.com/huangsam/integral/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankResults outputs the ranking, dispatching based on the output format configured.
func WriteRankResults(result schema.RankingResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)
	entities := schema.EnrichEntities(result.Entities)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForRank(w, entities)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRank(w, entities, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertRankedEntities(entities))
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankTable(w, result, entities, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeRankTable generates and writes the human-readable ranking table.
func writeRankTable(w io.Writer, result schema.RankingResult, entities []schema.EnrichedEntityResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Company", "Financial", "Media", "Reputation", "Integral", "Label"}
	if cfg.Detail {
		headers = append(headers, "Pre-scale")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, e := range entities {
		row := []string{
			strconv.Itoa(e.Rank),
			contract.TruncatePath(e.Company, nameWidth),
			fmtFloat(e.FinancialScore),
			fmtFloat(e.MediaScore),
			fmtFloat(e.ReputationScore),
			fmtFloat(e.Integral100),
			labelFor(e.Integral100, cfg),
		}
		if cfg.Detail {
			row = append(row, fmtFloat(e.Composite))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	total := max(result.Total, len(entities))
	if _, err := fmt.Fprintf(w, "Showing top %d of %d entities (weights: financial=%.2f media=%.2f reputation=%.2f)\n",
		len(entities), total, cfg.Weights.Financial(), cfg.Weights.Media(), cfg.Weights.Reputation()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ranking completed in %v. History backend: %s\n", duration, historyBackendName(cfg)); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForRank writes the ranking in CSV format.
func writeCSVResultsForRank(w io.Writer, entities []schema.EnrichedEntityResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"company",
		"fin_score",
		"med_score",
		"rep_score",
		"integral",
		"integral_100",
		"label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entities {
			rec := []string{
				strconv.Itoa(e.Rank),
				e.Company,
				fmtFloat(e.FinancialScore),
				fmtFloat(e.MediaScore),
				fmtFloat(e.ReputationScore),
				fmtFloat(e.Composite),
				fmtFloat(e.Integral100),
				e.Label,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForRank writes the ranking in JSON format.
func writeJSONResultsForRank(w io.Writer, entities []schema.EnrichedEntityResult) error {
	if entities == nil {
		entities = []schema.EnrichedEntityResult{}
	}
	return writeJSON(w, entities)
}

// historyBackendName returns the history backend for the summary line.
func historyBackendName(cfg *contract.Config) schema.DatabaseBackend {
	if cfg.AnalysisBackend == "" {
		return schema.NoneBackend
	}
	return cfg.AnalysisBackend
}

// Package parquet provides data structures and functions for exporting integral
// rankings and ranking history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/integral/schema"
	"github.com/parquet-go/parquet-go"
)

// RankingRun represents a single ranking run with metadata.
// This struct maps to the integral_ranking_runs database table.
type RankingRun struct {
	// RunID is the unique identifier for this ranking run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this ranking run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalEntities is the number of ranked entities in this run
	TotalEntities int32 `parquet:"total_entities,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// EntityScore represents the stored scores of one entity in a ranking run.
// This struct maps to the integral_entity_scores database table.
type EntityScore struct {
	RunID           int64   `parquet:"run_id,snappy"`
	Company         string  `parquet:"company,snappy"`
	Rank            int32   `parquet:"entity_rank,snappy"`
	FinancialScore  float64 `parquet:"fin_score,snappy"`
	MediaScore      float64 `parquet:"med_score,snappy"`
	ReputationScore float64 `parquet:"rep_score,snappy"`
	Composite       float64 `parquet:"composite,snappy"`
	Integral100     float64 `parquet:"integral_100,snappy"`
	Label           string  `parquet:"score_label,snappy"`
}

// RankedEntity is one row of a ranking written with --output parquet.
type RankedEntity struct {
	Rank            int32   `parquet:"rank,snappy"`
	Company         string  `parquet:"company,snappy"`
	FinancialScore  float64 `parquet:"fin_score,snappy"`
	MediaScore      float64 `parquet:"med_score,snappy"`
	ReputationScore float64 `parquet:"rep_score,snappy"`
	Composite       float64 `parquet:"integral,snappy"`
	Integral100     float64 `parquet:"integral_100,snappy"`
	Label           string  `parquet:"label,snappy"`
}

// WriteRows writes rows of any tagged struct type to w as a Parquet file.
// The schema is derived from the struct tags of T.
func WriteRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteRankingRunsParquet writes a slice of RankingRun structs to a Parquet file.
func WriteRankingRunsParquet(data []RankingRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteEntityScoresParquet writes a slice of EntityScore structs to a Parquet file.
func WriteEntityScoresParquet(data []EntityScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertRankingRunRecords converts schema.RankingRunRecord to RankingRun for Parquet export.
func ConvertRankingRunRecords(records []schema.RankingRunRecord) []RankingRun {
	result := make([]RankingRun, len(records))
	for i, record := range records {
		result[i] = RankingRun{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalEntities: record.TotalEntities,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertEntityScoreRecords converts schema.EntityScoreRecord to EntityScore for Parquet export.
func ConvertEntityScoreRecords(records []schema.EntityScoreRecord) []EntityScore {
	result := make([]EntityScore, len(records))
	for i, record := range records {
		result[i] = EntityScore(record)
	}
	return result
}

// ConvertRankedEntities converts enriched ranking results to RankedEntity rows.
func ConvertRankedEntities(entities []schema.EnrichedEntityResult) []RankedEntity {
	result := make([]RankedEntity, len(entities))
	for i, e := range entities {
		result[i] = RankedEntity{
			Rank:            int32(e.Rank),
			Company:         e.Company,
			FinancialScore:  e.FinancialScore,
			MediaScore:      e.MediaScore,
			ReputationScore: e.ReputationScore,
			Composite:       e.Composite,
			Integral100:     e.Integral100,
			Label:           e.Label,
		}
	}
	return result
}

package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/internal/parquet"
)

// Suffixes appended to the --output-file prefix by ExecuteHistoryExport.
const (
	RankingRunsSuffix  = ".ranking_runs.parquet"
	EntityScoresSuffix = ".entity_scores.parquet"
)

// ExecuteHistoryExport exports the stored ranking history to two Parquet files
// named after outputFile, reporting progress to w.
func ExecuteHistoryExport(w io.Writer, mgr contract.HistoryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetHistoryStore()
	if store == nil {
		return errors.New("ranking history is not enabled. Set --analysis-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no ranking history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total ranking runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total entity records: %d\n", status.TableSizes[entityScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve ranking runs: %w", err)
	}
	scores, err := store.GetAllEntityScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve entity scores: %w", err)
	}

	runsFile := outputFile + RankingRunsSuffix
	if err := parquet.WriteRankingRunsParquet(parquet.ConvertRankingRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write ranking runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d ranking runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + EntityScoresSuffix
	if err := parquet.WriteEntityScoresParquet(parquet.ConvertEntityScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write entity scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d entity score records to: %s\n", len(scores), scoresFile)

	return nil
}

// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/integral/schema"
)

// HistoryManager defines the interface for reaching the ranking history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking ranking runs and storing their results.
type HistoryStore interface {
	// BeginRun creates a new ranking run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the ranking run with completion data
	EndRun(runID int64, endTime time.Time, totalEntities int) error

	// RecordEntityScores stores the ranked entities of a run
	RecordEntityScores(runID int64, entities []schema.EnrichedEntityResult) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every stored ranking run
	GetAllRuns() ([]schema.RankingRunRecord, error)

	// GetAllEntityScores retrieves every stored entity score
	GetAllEntityScores() ([]schema.EntityScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

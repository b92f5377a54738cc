package schema

import "time"

// RankingRunRecord represents a row from the integral_ranking_runs table.
type RankingRunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalEntities int32
	ConfigParams  *string
}

// EntityScoreRecord represents a row from the integral_entity_scores table.
type EntityScoreRecord struct {
	RunID           int64
	Company         string
	Rank            int32
	FinancialScore  float64
	MediaScore      float64
	ReputationScore float64
	Composite       float64
	Integral100     float64
	Label           string
}

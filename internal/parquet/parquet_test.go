package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/integral/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads every row of a Parquet file back into T.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func sampleRuns() []schema.RankingRunRecord {
	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"key":"company","weights":{"financial":0.4,"media":0.3,"reputation":0.3}}`

	return []schema.RankingRunRecord{
		{
			RunID:         1,
			RunUUID:       "5f0c6a2e-8d7b-4d0e-9a53-3a1f0b7f2c11",
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &duration,
			TotalEntities: 12,
			ConfigParams:  &params,
		},
		{
			RunID:     2,
			RunUUID:   "0b9e4c3d-1f2a-4b5c-8d6e-7f8091a2b3c4",
			StartTime: start.Add(time.Hour),
		},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		schema  *parquet.Schema
		columns []string
	}{
		{
			name:    "ranking runs",
			schema:  parquet.SchemaOf(new(RankingRun)),
			columns: []string{"run_id", "run_uuid", "start_time", "end_time", "run_duration_ms", "total_entities", "config_params"},
		},
		{
			name:    "entity scores",
			schema:  parquet.SchemaOf(new(EntityScore)),
			columns: []string{"run_id", "company", "entity_rank", "fin_score", "med_score", "rep_score", "composite", "integral_100", "score_label"},
		},
		{
			name:    "ranked entities",
			schema:  parquet.SchemaOf(new(RankedEntity)),
			columns: []string{"rank", "company", "fin_score", "med_score", "rep_score", "integral", "integral_100", "label"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, col := range tt.columns {
				_, ok := tt.schema.Lookup(col)
				assert.True(t, ok, "column %s should exist in schema", col)
			}
		})
	}
}

func TestWriteRankingRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRankingRunRecords(sampleRuns())

	require.NoError(t, WriteRankingRunsParquet(data, outputPath))
	got := readAll[RankingRun](t, outputPath)
	require.Len(t, got, len(data))

	for i := range data {
		assert.Equal(t, data[i].RunID, got[i].RunID)
		assert.Equal(t, data[i].RunUUID, got[i].RunUUID)
		assert.Equal(t, data[i].TotalEntities, got[i].TotalEntities)
		assert.WithinDuration(t, data[i].StartTime, got[i].StartTime, time.Microsecond)

		if data[i].EndTime == nil {
			assert.Nil(t, got[i].EndTime)
		} else {
			require.NotNil(t, got[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *got[i].EndTime, time.Microsecond)
		}
		if data[i].ConfigParams == nil {
			assert.Nil(t, got[i].ConfigParams)
		} else {
			require.NotNil(t, got[i].ConfigParams)
			assert.Equal(t, *data[i].ConfigParams, *got[i].ConfigParams)
		}
	}
}

func TestWriteEntityScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")
	data := ConvertEntityScoreRecords([]schema.EntityScoreRecord{
		{RunID: 1, Company: "Acme", Rank: 1, FinancialScore: 1, MediaScore: 0.8, ReputationScore: 0.5, Composite: 0.8, Integral100: 100, Label: schema.LeaderValue},
		{RunID: 1, Company: "Beta", Rank: 2, FinancialScore: 0, MediaScore: 0.2, ReputationScore: 0.5, Composite: 0.2, Integral100: 0, Label: schema.WeakValue},
	})

	require.NoError(t, WriteEntityScoresParquet(data, outputPath))
	assert.Equal(t, data, readAll[EntityScore](t, outputPath))
}

func TestWriteRowsRankedEntities(t *testing.T) {
	entities := schema.EnrichEntities([]schema.EntityResult{
		{Company: "B", FinancialScore: 1, MediaScore: 1, ReputationScore: 0.5, Composite: 5.0 / 6, Integral100: 100},
		{Company: "A", ReputationScore: 0.5, Composite: 1.0 / 6},
	})
	rows := ConvertRankedEntities(entities)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, schema.LeaderValue, rows[0].Label)
	assert.Equal(t, schema.WeakValue, rows[1].Label)

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))

	reader := parquet.NewGenericReader[RankedEntity](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	got := make([]RankedEntity, reader.NumRows())
	n, err := reader.Read(got)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, rows, got[:n])
}

func TestWriteEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRankingRunsParquet([]RankingRun{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain parquet metadata")
	assert.Empty(t, readAll[RankingRun](t, outputPath))
}

func TestWriteInvalidPath(t *testing.T) {
	err := WriteEntityScoresParquet(nil, filepath.Join(t.TempDir(), "missing", "dir", "x.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}

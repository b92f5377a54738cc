package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/integral/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*HistoryStoreImpl, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl), dbPath
}

func sampleEntities() []schema.EnrichedEntityResult {
	return schema.EnrichEntities([]schema.EntityResult{
		{Company: "B", FinancialScore: 1, MediaScore: 1, ReputationScore: 0.5, Composite: 5.0 / 6, Integral100: 100},
		{Company: "A", FinancialScore: 0, MediaScore: 0, ReputationScore: 0.5, Composite: 1.0 / 6, Integral100: 0},
	})
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), map[string]any{"key": "company"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.RecordEntityScores(1, sampleEntities()))
	assert.NoError(t, store.EndRun(1, time.Now(), 2))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Close())
}

func TestHistoryStoreSQLiteRoundTrip(t *testing.T) {
	store, _ := newSQLiteStore(t)

	start := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{
		"key":     "company",
		"weights": map[string]float64{"financial": 0.4, "media": 0.3, "reputation": 0.3},
	})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordEntityScores(runID, sampleEntities()))
	require.NoError(t, store.EndRun(runID, start.Add(250*time.Millisecond), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	_, err = uuid.Parse(run.RunUUID)
	assert.NoError(t, err, "run uuid should be a valid UUID")
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(250), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalEntities)

	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, "company", params["key"])

	scores, err := store.GetAllEntityScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "B", scores[0].Company)
	assert.Equal(t, int32(1), scores[0].Rank)
	assert.Equal(t, schema.LeaderValue, scores[0].Label)
	assert.InDelta(t, 5.0/6, scores[0].Composite, 1e-12)
	assert.Equal(t, "A", scores[1].Company)
	assert.Equal(t, schema.WeakValue, scores[1].Label)
}

func TestHistoryStoreSQLiteStatus(t *testing.T) {
	store, _ := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[rankingRunsTable])

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		start := first.Add(time.Duration(i) * time.Hour)
		runID, err := store.BeginRun(start, nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordEntityScores(runID, sampleEntities()))
		require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.NotEmpty(t, status.LastRunUUID)
	assert.True(t, first.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 6, status.TotalEntities)
	assert.Equal(t, int64(3), status.TableSizes[rankingRunsTable])
	assert.Equal(t, int64(6), status.TableSizes[entityScoresTable])

	var buf bytes.Buffer
	PrintHistoryStatus(&buf, status)
	assert.Contains(t, buf.String(), "Total Runs: 3")
	assert.Contains(t, buf.String(), "integral_entity_scores: 6 rows")
}

func TestHistoryStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.GetAllRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime, "unfinished run keeps a NULL end time")
}

func TestHistoryStoreEndRunUnknown(t *testing.T) {
	store, _ := newSQLiteStore(t)
	assert.Error(t, store.EndRun(42, time.Now(), 1))
}

func TestHistoryStoreUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestDBTimeScan(t *testing.T) {
	want := time.Date(2026, 10, 19, 8, 15, 30, 123456000, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"native", want},
		{"rfc3339", want.Format(time.RFC3339Nano)},
		{"mysql text", []byte("2026-10-19 08:15:30.123456")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dbTime
			require.NoError(t, got.Scan(tt.src))
			assert.True(t, got.Valid)
			assert.True(t, want.Equal(got.Time), "got %v", got.Time)
		})
	}

	var null dbTime
	require.NoError(t, null.Scan(nil))
	assert.False(t, null.Valid)

	assert.Error(t, new(dbTime).Scan(42))
	assert.Error(t, new(dbTime).Scan("yesterday"))
}

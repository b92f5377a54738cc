package algo

import (
	"math"
	"testing"

	"github.com/huangsam/integral/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergeAndScore runs the pure pipeline over source tables.
func mergeAndScore(t *testing.T, tables []schema.Table, w schema.Weights) []schema.EntityResult {
	t.Helper()
	merged, err := Merge(tables, "company")
	require.NoError(t, err)
	groups := Classify(FeatureColumns(merged, "company"), schema.DefaultVocabulary())
	entities, err := Score(merged, "company", groups, w)
	require.NoError(t, err)
	return entities
}

func mustWeights(t *testing.T, fin, med, rep float64) schema.Weights {
	t.Helper()
	w, err := schema.NewWeights(fin, med, rep)
	require.NoError(t, err)
	return w
}

// TestScoreWorkedExample checks the two-company example with equal weights.
func TestScoreWorkedExample(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 100}, []any{"B", 200})
	med := tbl("media", []string{"company", "sentiment"}, []any{"A", 0.2}, []any{"B", 0.8})
	rep := tbl("reputation", []string{"company", "nps"}, []any{"A", 50}, []any{"B", 50})

	entities := mergeAndScore(t, []schema.Table{fin, med, rep}, mustWeights(t, 1, 1, 1))
	require.Len(t, entities, 2)

	b, a := entities[0], entities[1]
	assert.Equal(t, "B", b.Company)
	assert.Equal(t, "A", a.Company)

	assert.InDelta(t, 0.0, a.FinancialScore, 1e-9)
	assert.InDelta(t, 1.0, b.FinancialScore, 1e-9)
	assert.InDelta(t, 0.0, a.MediaScore, 1e-9)
	assert.InDelta(t, 1.0, b.MediaScore, 1e-9)
	assert.InDelta(t, 0.5, a.ReputationScore, 1e-9)
	assert.InDelta(t, 0.5, b.ReputationScore, 1e-9)

	assert.InDelta(t, 1.0/6.0, a.Composite, 1e-9)
	assert.InDelta(t, 5.0/6.0, b.Composite, 1e-9)

	assert.InDelta(t, 0.0, a.Integral100, 1e-9)
	assert.InDelta(t, 100.0, b.Integral100, 1e-9)
}

func TestScoreNoMatchingColumnsIsNeutral(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue", "sector"},
		[]any{"A", 10, "tech"},
		[]any{"B", 20, "retail"},
		[]any{"C", 30, "energy"},
	)

	entities := mergeAndScore(t, []schema.Table{fin}, mustWeights(t, 0.4, 0.3, 0.3))
	require.Len(t, entities, 3)
	for _, e := range entities {
		assert.Equal(t, 0.5, e.MediaScore)
		assert.Equal(t, 0.5, e.ReputationScore)
	}
	assert.Equal(t, []string{"C", "B", "A"}, companies(entities))
	assert.InDelta(t, 100.0, entities[0].Integral100, 1e-9)
	assert.InDelta(t, 50.0, entities[1].Integral100, 1e-9)
	assert.InDelta(t, 0.0, entities[2].Integral100, 1e-9)
}

func TestScoreAllEqualGivesFifty(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 5}, []any{"B", 5}, []any{"C", 5})
	entities := mergeAndScore(t, []schema.Table{fin}, mustWeights(t, 0.4, 0.3, 0.3))
	for _, e := range entities {
		assert.Equal(t, 50.0, e.Integral100)
	}
	assert.Equal(t, []string{"A", "B", "C"}, companies(entities), "ties keep first-appearance order")
}

func TestScoreGroupMeanSkipsMissingAndText(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue", "profit", "growth_note"},
		[]any{"A", 10, nil, "steady"},
		[]any{"B", 10, 30, "fast"},
		[]any{"C", nil, nil, nil},
	)

	merged, err := Merge([]schema.Table{fin}, "company")
	require.NoError(t, err)
	groups := Classify(FeatureColumns(merged, "company"), schema.DefaultVocabulary())
	assert.Equal(t, []string{"revenue", "profit", "growth_note"}, groups.Financial)

	means := GroupMeans(merged, groups.Financial)
	assert.Equal(t, 10.0, means[0])
	assert.Equal(t, 20.0, means[1])
	assert.True(t, math.IsNaN(means[2]))

	entities, err := Score(merged, "company", groups, mustWeights(t, 1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, companies(entities))
	assert.InDelta(t, 0.5, entities[1].FinancialScore, 1e-9, "missing mean gets neutral score")
	assert.InDelta(t, 50.0, entities[1].Integral100, 1e-9)
	assert.InDelta(t, 0.0, entities[2].FinancialScore, 1e-9)
}

func TestScoreBounds(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue", "profit"},
		[]any{"A", -50, 3}, []any{"B", 1e9, nil}, []any{"C", 0, 0}, []any{"D", nil, nil},
	)
	med := tbl("media", []string{"company", "mentions", "sentiment"},
		[]any{"B", 3, -1}, []any{"E", 10, 1},
	)
	rep := tbl("reputation", []string{"company", "survey", "nps"},
		[]any{"A", 4.5, 20}, []any{"E", nil, 80},
	)

	entities := mergeAndScore(t, []schema.Table{fin, med, rep}, mustWeights(t, 0.7, 0.2, 0.1))
	require.Len(t, entities, 5)
	for _, e := range entities {
		for _, s := range []float64{e.FinancialScore, e.MediaScore, e.ReputationScore, e.Composite} {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
		assert.GreaterOrEqual(t, e.Integral100, 0.0)
		assert.LessOrEqual(t, e.Integral100, 100.0)
	}
	assert.InDelta(t, 100.0, entities[0].Integral100, 1e-9)
	assert.InDelta(t, 0.0, entities[len(entities)-1].Integral100, 1e-9)
	for i := 1; i < len(entities); i++ {
		assert.LessOrEqual(t, entities[i].Integral100, entities[i-1].Integral100)
	}
}

func TestScoreWeightInvariance(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 1}, []any{"B", 3}, []any{"C", 2})
	med := tbl("media", []string{"company", "mentions"}, []any{"A", 9}, []any{"B", 1}, []any{"C", 4})

	base := mergeAndScore(t, []schema.Table{fin, med}, mustWeights(t, 0.2, 0.5, 0.3))
	scaled := mergeAndScore(t, []schema.Table{fin, med}, mustWeights(t, 2, 5, 3))

	require.Equal(t, companies(base), companies(scaled))
	for i := range base {
		assert.InDelta(t, base[i].Integral100, scaled[i].Integral100, 1e-9)
		assert.InDelta(t, base[i].Composite, scaled[i].Composite, 1e-9)
	}
}

func TestScoreScaledWeightsKeepExactTies(t *testing.T) {
	// With weights 1:3:1, A=(0,0.5,0) and B=(0.5,0,1) both have composite 0.3.
	fin := tbl("financial", []string{"company", "revenue", "mentions", "nps"},
		[]any{"A", 0, 1, 0},
		[]any{"B", 1, 0, 2},
		[]any{"C", 2, 2, 2},
	)

	for _, w := range []schema.Weights{mustWeights(t, 1, 3, 1), mustWeights(t, 0.1, 0.3, 0.1)} {
		entities := mergeAndScore(t, []schema.Table{fin}, w)
		require.Equal(t, []string{"C", "A", "B"}, companies(entities))
		assert.Equal(t, 100.0, entities[0].Integral100)
		assert.Equal(t, 0.0, entities[1].Integral100)
		assert.Equal(t, 0.0, entities[2].Integral100)
		assert.Equal(t, entities[1].Composite, entities[2].Composite)
	}
}

func TestGroupMeansRepeatedColumnNames(t *testing.T) {
	table := tbl("financial", []string{"company", "revenue", "revenue"},
		[]any{"A", 0, 100},
		[]any{"B", 10, 0},
	)
	assert.Equal(t, []float64{50, 5}, GroupMeans(table, []string{"revenue"}))
	assert.Equal(t, []float64{50, 5}, GroupMeans(table, []string{"revenue", "revenue"}))
}

func TestScoreTieIsStable(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"},
		[]any{"Zeta", 10}, []any{"Alpha", 20}, []any{"Mid", 10}, []any{"Top", 30},
	)
	entities := mergeAndScore(t, []schema.Table{fin}, mustWeights(t, 1, 1, 1))
	assert.Equal(t, []string{"Top", "Alpha", "Zeta", "Mid"}, companies(entities))
	assert.Equal(t, entities[2].Integral100, entities[3].Integral100)
}

func TestScoreDoesNotMutateTable(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 1}, []any{"B", 2})
	merged, err := Merge([]schema.Table{fin}, "company")
	require.NoError(t, err)
	before := merged.Clone()

	_, err = Score(merged, "company", Classify(FeatureColumns(merged, "company"), schema.DefaultVocabulary()), mustWeights(t, 1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, before, merged)
}

func TestScoreErrors(t *testing.T) {
	table := tbl("unified", []string{"company", "revenue"}, []any{"A", 1})

	t.Run("unvalidated weights", func(t *testing.T) {
		_, err := Score(table, "company", schema.ColumnGroups{}, schema.Weights{})
		assert.ErrorIs(t, err, schema.ErrZeroWeightSum)
	})

	t.Run("missing key column", func(t *testing.T) {
		_, err := Score(table, "name", schema.ColumnGroups{}, mustWeights(t, 1, 1, 1))
		assert.ErrorIs(t, err, schema.ErrMissingKeyColumn)
	})

	t.Run("no rows", func(t *testing.T) {
		empty := schema.Table{Columns: []string{"company"}}
		_, err := Score(empty, "company", schema.ColumnGroups{}, mustWeights(t, 1, 1, 1))
		assert.ErrorIs(t, err, schema.ErrEmptyInput)
	})
}

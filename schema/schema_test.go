package schema_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/huangsam/integral/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberRejectsNonFinite(t *testing.T) {
	assert.True(t, schema.Number(math.NaN()).IsMissing())
	assert.True(t, schema.Number(math.Inf(1)).IsMissing())
	assert.Equal(t, schema.NumberKind, schema.Number(1.5).Kind)
}

func TestValueMarshalJSON(t *testing.T) {
	row := []schema.Value{schema.Text("Acme"), schema.Number(12.5), schema.Missing()}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `["Acme", 12.5, null]`, string(data))
}

func TestTableIsEmpty(t *testing.T) {
	assert.True(t, schema.Table{}.IsEmpty())
	assert.True(t, schema.Table{Columns: []string{"company"}}.IsEmpty())
	assert.True(t, schema.Table{Rows: [][]schema.Value{{schema.Text("A")}}}.IsEmpty())
	assert.False(t, schema.Table{
		Columns: []string{"company"},
		Rows:    [][]schema.Value{{schema.Text("A")}},
	}.IsEmpty())
}

func TestTableIsNumericColumn(t *testing.T) {
	table := schema.Table{
		Columns: []string{"company", "revenue", "notes", "blank"},
		Rows: [][]schema.Value{
			{schema.Text("A"), schema.Number(1), schema.Text("ok"), schema.Missing()},
			{schema.Text("B"), schema.Missing(), schema.Number(2), schema.Missing()},
		},
	}

	assert.False(t, table.IsNumericColumn(0))
	assert.True(t, table.IsNumericColumn(1))
	assert.False(t, table.IsNumericColumn(2))
	assert.True(t, table.IsNumericColumn(3), "all-missing column counts as numeric")
}

func TestTableCloneIsDeep(t *testing.T) {
	original := schema.Table{
		Name:    "financial",
		Columns: []string{"company", "revenue"},
		Rows:    [][]schema.Value{{schema.Text("A"), schema.Number(1)}},
	}

	clone := original.Clone()
	clone.Columns[1] = "profit"
	clone.Rows[0][1] = schema.Number(99)

	assert.Equal(t, "revenue", original.Columns[1])
	assert.Equal(t, 1.0, original.Rows[0][1].Num)
}

func TestNewWeights(t *testing.T) {
	t.Run("rescales to sum one", func(t *testing.T) {
		w, err := schema.NewWeights(0.4, 0.3, 0.3)
		require.NoError(t, err)
		assert.InDelta(t, 0.4, w.Financial(), 1e-9)
		assert.InDelta(t, 0.3, w.Media(), 1e-9)
		assert.InDelta(t, 0.3, w.Reputation(), 1e-9)
	})

	t.Run("equal weights", func(t *testing.T) {
		w, err := schema.NewWeights(1, 1, 1)
		require.NoError(t, err)
		for _, g := range schema.AllGroups {
			assert.InDelta(t, 1.0/3.0, w.Of(g), 1e-9)
		}
	})

	t.Run("scale invariant", func(t *testing.T) {
		a, err := schema.NewWeights(0.2, 0.5, 0.3)
		require.NoError(t, err)
		b, err := schema.NewWeights(2, 5, 3)
		require.NoError(t, err)
		for _, g := range schema.AllGroups {
			assert.InDelta(t, a.Of(g), b.Of(g), 1e-12)
		}
	})

	t.Run("huge weights stay finite", func(t *testing.T) {
		w, err := schema.NewWeights(1e308, 1e308, 1e308)
		require.NoError(t, err)
		assert.False(t, w.IsZero())
		for _, g := range schema.AllGroups {
			assert.InDelta(t, 1.0/3.0, w.Of(g), 1e-12)
		}
	})

	t.Run("zero sum", func(t *testing.T) {
		_, err := schema.NewWeights(0, 0, 0)
		assert.ErrorIs(t, err, schema.ErrZeroWeightSum)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := schema.NewWeights(-0.1, 0.5, 0.5)
		assert.True(t, errors.Is(err, schema.ErrInvalidWeight))
	})

	t.Run("nan weight", func(t *testing.T) {
		_, err := schema.NewWeights(math.NaN(), 0.5, 0.5)
		assert.ErrorIs(t, err, schema.ErrInvalidWeight)
	})
}

func TestDefaultVocabularyIsFresh(t *testing.T) {
	v := schema.DefaultVocabulary()
	v[schema.FinancialGroup][0] = "changed"
	assert.Equal(t, "revenue", schema.DefaultVocabulary()[schema.FinancialGroup][0])
}

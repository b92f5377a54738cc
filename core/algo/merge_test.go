package algo

import (
	"testing"

	"github.com/huangsam/integral/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeErrors(t *testing.T) {
	t.Run("no tables", func(t *testing.T) {
		_, err := Merge(nil, "company")
		assert.ErrorIs(t, err, schema.ErrEmptyInput)
	})

	t.Run("only empty tables", func(t *testing.T) {
		_, err := Merge([]schema.Table{{Name: "financial"}, {Name: "media", Columns: []string{"company"}}}, "company")
		assert.ErrorIs(t, err, schema.ErrEmptyInput)
	})

	t.Run("missing key column", func(t *testing.T) {
		fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 1})
		med := tbl("media", []string{"name", "sentiment"}, []any{"A", 0.2})
		_, err := Merge([]schema.Table{fin, med}, "company")
		require.ErrorIs(t, err, schema.ErrMissingKeyColumn)
		assert.Contains(t, err.Error(), "media")
	})

	t.Run("empty table without key is skipped", func(t *testing.T) {
		fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 1})
		med := schema.Table{Name: "media", Columns: []string{"name"}}
		merged, err := Merge([]schema.Table{fin, med}, "company")
		require.NoError(t, err)
		assert.Len(t, merged.Rows, 1)
	})
}

func TestMergeOuterJoin(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"},
		[]any{"A", 100},
		[]any{"B", 200},
	)
	med := tbl("media", []string{"company", "sentiment"},
		[]any{"B", 0.8},
		[]any{"C", 0.1},
	)

	merged, err := Merge([]schema.Table{fin, med}, "company")
	require.NoError(t, err)

	assert.Equal(t, UnifiedTableName, merged.Name)
	assert.Equal(t, []string{"company", "revenue", "sentiment"}, merged.Columns)
	require.Len(t, merged.Rows, 3)

	assert.Equal(t, "A", merged.Rows[0][0].String())
	assert.Equal(t, 100.0, merged.Rows[0][1].Num)
	assert.True(t, merged.Rows[0][2].IsMissing())

	assert.Equal(t, "B", merged.Rows[1][0].String())
	assert.Equal(t, 200.0, merged.Rows[1][1].Num)
	assert.Equal(t, 0.8, merged.Rows[1][2].Num)

	assert.Equal(t, "C", merged.Rows[2][0].String())
	assert.True(t, merged.Rows[2][1].IsMissing())
	assert.Equal(t, 0.1, merged.Rows[2][2].Num)
}

func TestMergeMovesKeyFirst(t *testing.T) {
	fin := tbl("financial", []string{"revenue", "company"}, []any{10, "A"})
	merged, err := Merge([]schema.Table{fin}, "company")
	require.NoError(t, err)
	assert.Equal(t, []string{"company", "revenue"}, merged.Columns)
	assert.Equal(t, "A", merged.Rows[0][0].String())
	assert.Equal(t, 10.0, merged.Rows[0][1].Num)
}

func TestMergeSuffixesSharedColumns(t *testing.T) {
	fin := tbl("financial", []string{"company", "score"}, []any{"A", 1})
	med := tbl("media", []string{"company", "score"}, []any{"A", 2})
	merged, err := Merge([]schema.Table{fin, med}, "company")
	require.NoError(t, err)
	assert.Equal(t, []string{"company", "score_x", "score_y"}, merged.Columns)
	assert.Equal(t, 1.0, merged.Rows[0][1].Num)
	assert.Equal(t, 2.0, merged.Rows[0][2].Num)
}

func TestMergeSuffixNeverCollides(t *testing.T) {
	fin := tbl("financial", []string{"company", "score", "score_y"}, []any{"A", 1, 3})
	med := tbl("media", []string{"company", "score", "score_x"}, []any{"A", 2, 4})
	merged, err := Merge([]schema.Table{fin, med}, "company")
	require.NoError(t, err)
	assert.Equal(t, []string{"company", "score_x_x", "score_y", "score_y_y", "score_x"}, merged.Columns)
	assert.Equal(t, []any{"A", 1.0, 3.0, 2.0, 4.0}, []any{merged.Rows[0][0].String(), merged.Rows[0][1].Num, merged.Rows[0][2].Num, merged.Rows[0][3].Num, merged.Rows[0][4].Num})
}

func TestMergeDuplicateKeysCrossMultiply(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"},
		[]any{"A", 1},
		[]any{"A", 2},
	)
	med := tbl("media", []string{"company", "sentiment"},
		[]any{"A", 0.1},
		[]any{"A", 0.2},
	)
	merged, err := Merge([]schema.Table{fin, med}, "company")
	require.NoError(t, err)
	require.Len(t, merged.Rows, 4)

	var pairs [][2]float64
	for _, row := range merged.Rows {
		pairs = append(pairs, [2]float64{row[1].Num, row[2].Num})
	}
	assert.Equal(t, [][2]float64{{1, 0.1}, {1, 0.2}, {2, 0.1}, {2, 0.2}}, pairs)
}

func TestMergeOrderIndependentOnKeysAndValues(t *testing.T) {
	fin := tbl("financial", []string{"company", "revenue"}, []any{"A", 1}, []any{"B", 2})
	med := tbl("media", []string{"company", "mentions"}, []any{"B", 5}, []any{"C", 7})
	rep := tbl("reputation", []string{"company", "nps"}, []any{"C", 30}, []any{"D", 40})

	orders := [][]schema.Table{
		{fin, med, rep},
		{rep, med, fin},
		{med, fin, rep},
		{rep, fin, med},
	}

	expected, err := Merge(orders[0], "company")
	require.NoError(t, err)
	want := cellsByKey(expected)
	assert.Len(t, want, 4)

	for _, order := range orders[1:] {
		merged, err := Merge(order, "company")
		require.NoError(t, err)
		assert.ElementsMatch(t, expected.Columns, merged.Columns)
		assert.Equal(t, want, cellsByKey(merged))
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	fin := tbl("financial", []string{"revenue", "company"}, []any{1, "A"})
	before := fin.Clone()

	_, err := Merge([]schema.Table{fin}, "company")
	require.NoError(t, err)
	assert.Equal(t, before, fin)
}

func TestMergePadsShortRows(t *testing.T) {
	fin := schema.Table{
		Name:    "financial",
		Columns: []string{"company", "revenue", "profit"},
		Rows:    [][]schema.Value{{schema.Text("A"), schema.Number(1)}},
	}
	merged, err := Merge([]schema.Table{fin}, "company")
	require.NoError(t, err)
	require.Len(t, merged.Rows[0], 3)
	assert.True(t, merged.Rows[0][2].IsMissing())
}

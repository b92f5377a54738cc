package algo

import (
	"fmt"
	"math"

	"github.com/huangsam/integral/schema"
)

// GroupMeans returns, per row, the mean of the present numbers across the
// given columns. Columns that are absent from the table or hold text are
// skipped. Rows without any present number get NaN.
//
// Every table column carrying one of the names counts once, so repeated
// headers are all averaged.
func GroupMeans(table schema.Table, columns []string) []float64 {
	wanted := make(map[string]bool, len(columns))
	for _, c := range columns {
		wanted[c] = true
	}
	var idx []int
	for i, name := range table.Columns {
		if wanted[name] && table.IsNumericColumn(i) {
			idx = append(idx, i)
		}
	}

	means := make([]float64, len(table.Rows))
	for r := range table.Rows {
		sum, n := 0.0, 0
		for _, c := range idx {
			v := table.Cell(r, c)
			if v.Kind != schema.NumberKind {
				continue
			}
			sum += v.Num
			n++
		}
		if n == 0 {
			means[r] = math.NaN()
			continue
		}
		means[r] = sum / float64(n)
	}
	return means
}

// compositePrecision rounds the pre-scale composite to 12 decimal places so
// that composites equal up to ulp noise from rescaled weights compare equal.
const compositePrecision = 1e12

func roundComposite(v float64) float64 {
	return math.Round(v*compositePrecision) / compositePrecision
}

// GroupScores returns the normalized group means for one metric group.
func GroupScores(table schema.Table, groups schema.ColumnGroups, group schema.MetricGroup) []float64 {
	return Normalize(GroupMeans(table, groups.Columns(group)))
}

// Score computes the group scores and the composite for every row of the
// table and returns the entities ranked by descending composite.
//
// The composite before rescaling is the weighted sum of the three group
// scores. The final composite is that sum min-max rescaled to [0,100], so the
// lowest entity scores 0 and the highest 100 unless all are equal (50 each).
// The input table is never modified.
func Score(table schema.Table, key string, groups schema.ColumnGroups, weights schema.Weights) ([]schema.EntityResult, error) {
	if weights.IsZero() {
		return nil, schema.ErrZeroWeightSum
	}
	keyIdx := table.ColumnIndex(key)
	if keyIdx < 0 {
		return nil, fmt.Errorf("table %q has no %q column: %w", table.Name, key, schema.ErrMissingKeyColumn)
	}
	if len(table.Rows) == 0 {
		return nil, schema.ErrEmptyInput
	}

	fin := GroupScores(table, groups, schema.FinancialGroup)
	med := GroupScores(table, groups, schema.MediaGroup)
	rep := GroupScores(table, groups, schema.ReputationGroup)

	pre := make([]float64, len(table.Rows))
	for r := range table.Rows {
		pre[r] = roundComposite(weights.Financial()*fin[r] + weights.Media()*med[r] + weights.Reputation()*rep[r])
	}
	final := Normalize(pre)

	entities := make([]schema.EntityResult, len(table.Rows))
	for r := range table.Rows {
		entities[r] = schema.EntityResult{
			Company:         table.Cell(r, keyIdx).String(),
			FinancialScore:  fin[r],
			MediaScore:      med[r],
			ReputationScore: rep[r],
			Composite:       pre[r],
			Integral100:     100 * final[r],
		}
	}

	return RankEntities(entities, 0), nil
}

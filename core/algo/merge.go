// Package algo has the pure table algorithms: merge, classify, normalize, score and rank.
package algo

import (
	"fmt"

	"github.com/huangsam/integral/schema"
)

// UnifiedTableName is the name given to the result of Merge.
const UnifiedTableName = "unified"

// Suffixes for non-key column names present on both sides of a join.
const (
	leftSuffix  = "_x"
	rightSuffix = "_y"
)

// Merge outer-joins the non-empty tables left to right on the key column.
//
// Empty tables are skipped. Every remaining table must carry the key column.
// The result holds every key value seen in any source, with the key column
// first and missing cells wherever a source lacked that key. Duplicate keys
// inside one source are joined mechanically and multiply rows.
//
// Row order is first appearance: left rows in order, each followed by its
// right matches, then the right-only rows in their source order. Keys are not
// sorted, unlike a pandas outer merge.
func Merge(tables []schema.Table, key string) (schema.Table, error) {
	var sources []schema.Table
	for _, t := range tables {
		if !t.IsEmpty() {
			sources = append(sources, t)
		}
	}
	if len(sources) == 0 {
		return schema.Table{}, schema.ErrEmptyInput
	}

	for _, t := range sources {
		if !t.HasColumn(key) {
			return schema.Table{}, fmt.Errorf("table %q has no %q column: %w", t.Name, key, schema.ErrMissingKeyColumn)
		}
	}

	merged := keyFirst(sources[0], key)
	for _, right := range sources[1:] {
		merged = outerJoin(merged, keyFirst(right, key))
	}
	merged.Name = UnifiedTableName
	return merged, nil
}

// keyFirst returns a copy of t with the key column moved to position 0
// and every row padded or truncated to the header width.
func keyFirst(t schema.Table, key string) schema.Table {
	keyIdx := t.ColumnIndex(key)
	order := make([]int, 0, len(t.Columns))
	order = append(order, keyIdx)
	for i := range t.Columns {
		if i != keyIdx {
			order = append(order, i)
		}
	}

	out := schema.Table{
		Name:    t.Name,
		Columns: make([]string, len(order)),
		Rows:    make([][]schema.Value, len(t.Rows)),
	}
	for i, src := range order {
		out.Columns[i] = t.Columns[src]
	}
	for r := range t.Rows {
		row := make([]schema.Value, len(order))
		for i, src := range order {
			row[i] = t.Cell(r, src)
		}
		out.Rows[r] = row
	}
	return out
}

// outerJoin performs a full outer join of two key-first tables on column 0.
func outerJoin(left, right schema.Table) schema.Table {
	leftCols := left.Columns[1:]
	rightCols := right.Columns[1:]

	shared := make(map[string]bool)
	rightNames := make(map[string]bool, len(rightCols))
	for _, c := range rightCols {
		rightNames[c] = true
	}
	for _, c := range leftCols {
		if rightNames[c] {
			shared[c] = true
		}
	}

	taken := map[string]bool{left.Columns[0]: true}
	for _, c := range append(append([]string(nil), leftCols...), rightCols...) {
		if !shared[c] {
			taken[c] = true
		}
	}

	columns := make([]string, 0, 1+len(leftCols)+len(rightCols))
	columns = append(columns, left.Columns[0])
	for _, c := range leftCols {
		if shared[c] {
			c = suffixed(c, leftSuffix, taken)
		}
		columns = append(columns, c)
	}
	for _, c := range rightCols {
		if shared[c] {
			c = suffixed(c, rightSuffix, taken)
		}
		columns = append(columns, c)
	}

	rightIndex := make(map[string][]int, len(right.Rows))
	for r, row := range right.Rows {
		k := joinKey(row[0])
		rightIndex[k] = append(rightIndex[k], r)
	}

	matched := make([]bool, len(right.Rows))
	rows := make([][]schema.Value, 0, len(left.Rows)+len(right.Rows))

	for _, lrow := range left.Rows {
		matches := rightIndex[joinKey(lrow[0])]
		if len(matches) == 0 {
			rows = append(rows, joinRow(lrow[0], lrow[1:], nil, len(rightCols)))
			continue
		}
		for _, m := range matches {
			matched[m] = true
			rows = append(rows, joinRow(lrow[0], lrow[1:], right.Rows[m][1:], len(rightCols)))
		}
	}

	for r, rrow := range right.Rows {
		if matched[r] {
			continue
		}
		row := make([]schema.Value, 0, len(columns))
		row = append(row, rrow[0])
		for range leftCols {
			row = append(row, schema.Missing())
		}
		row = append(row, rrow[1:]...)
		rows = append(rows, row)
	}

	return schema.Table{Columns: columns, Rows: rows}
}

// suffixed appends suffix to name until the result is not taken, then marks it taken.
func suffixed(name, suffix string, taken map[string]bool) string {
	name += suffix
	for taken[name] {
		name += suffix
	}
	taken[name] = true
	return name
}

// joinRow concatenates a key, left values and right values. A nil right side
// is filled with rightWidth missing cells.
func joinRow(key schema.Value, left, right []schema.Value, rightWidth int) []schema.Value {
	row := make([]schema.Value, 0, 1+len(left)+rightWidth)
	row = append(row, key)
	row = append(row, left...)
	if right == nil {
		for range rightWidth {
			row = append(row, schema.Missing())
		}
		return row
	}
	return append(row, right...)
}

// joinKey maps a key cell to a comparable string. Cells of different kinds never match.
func joinKey(v schema.Value) string {
	return fmt.Sprintf("%d:%s", v.Kind, v.String())
}

// Package schema has the domain types shared across the integral packages.
package schema

import (
	"encoding/json"
	"math"
	"strconv"
)

// ValueKind tags the content of a table cell.
type ValueKind int

// All cell kinds supported.
const (
	MissingKind ValueKind = iota // absent value (NA, empty, no source row)
	NumberKind                   // finite float
	TextKind                     // anything that is not a number
)

// Value is a single table cell.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
}

// Missing returns the missing cell.
func Missing() Value {
	return Value{Kind: MissingKind}
}

// Number returns a numeric cell. Non-finite input becomes a missing cell.
func Number(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return Value{Kind: NumberKind, Num: v}
}

// Text returns a text cell.
func Text(s string) Value {
	return Value{Kind: TextKind, Text: s}
}

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool {
	return v.Kind == MissingKind
}

// String renders the cell for tabular output. Missing cells render empty.
func (v Value) String() string {
	switch v.Kind {
	case NumberKind:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case TextKind:
		return v.Text
	default:
		return ""
	}
}

// MarshalJSON encodes missing as null, numbers as numbers and text as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case NumberKind:
		return json.Marshal(v.Num)
	case TextKind:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

// Table is a named, row-major tabular dataset with ordered columns.
type Table struct {
	Name    string    `json:"name"`
	Columns []string  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// IsEmpty reports whether the table has no rows or no columns.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0 || len(t.Columns) == 0
}

// ColumnIndex returns the position of the named column or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at row r and column c, treating short rows as missing.
func (t Table) Cell(r, c int) Value {
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return Missing()
	}
	return row[c]
}

// IsNumericColumn reports whether no present cell of column c is text.
// A column with only missing cells counts as numeric.
func (t Table) IsNumericColumn(c int) bool {
	for r := range t.Rows {
		if t.Cell(r, c).Kind == TextKind {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	clone := Table{Name: t.Name}
	if t.Columns != nil {
		clone.Columns = make([]string, len(t.Columns))
		copy(clone.Columns, t.Columns)
	}
	if t.Rows != nil {
		clone.Rows = make([][]Value, len(t.Rows))
		for i, row := range t.Rows {
			clone.Rows[i] = make([]Value, len(row))
			copy(clone.Rows[i], row)
		}
	}
	return clone
}

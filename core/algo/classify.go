package algo

import (
	"strings"

	"github.com/huangsam/integral/schema"
)

// Classify assigns each column to every metric group whose vocabulary has a
// pattern contained in the column name. Columns matching no group are listed
// as unmatched and never contribute to a score.
func Classify(columns []string, vocab schema.Vocabulary) schema.ColumnGroups {
	var groups schema.ColumnGroups
	for _, col := range columns {
		matched := false
		for _, group := range schema.AllGroups {
			if matchesAny(col, vocab[group]) {
				groups.Add(group, col)
				matched = true
			}
		}
		if !matched {
			groups.Unmatched = append(groups.Unmatched, col)
		}
	}
	return groups
}

// FeatureColumns returns the table columns other than the key, in order.
func FeatureColumns(table schema.Table, key string) []string {
	columns := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		if c != key {
			columns = append(columns, c)
		}
	}
	return columns
}

// matchesAny reports whether column contains any non-empty pattern.
func matchesAny(column string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(column, p) {
			return true
		}
	}
	return false
}

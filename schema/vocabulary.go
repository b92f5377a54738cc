package schema

// Vocabulary maps each metric group to the substrings that select its columns.
// Matching is case-sensitive substring containment.
type Vocabulary map[MetricGroup][]string

// DefaultVocabulary returns a fresh copy of the built-in column vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FinancialGroup:  {"revenue", "profit", "growth"},
		MediaGroup:      {"mention", "sentiment", "positive"},
		ReputationGroup: {"survey", "nps", "controvers"},
	}
}

// Clone returns a deep copy of the vocabulary.
func (v Vocabulary) Clone() Vocabulary {
	clone := make(Vocabulary, len(v))
	for group, patterns := range v {
		clone[group] = append([]string(nil), patterns...)
	}
	return clone
}

// ColumnGroups is the result of classifying table columns into metric groups.
// Column order within each group follows the input order.
type ColumnGroups struct {
	Financial  []string `json:"financial"`
	Media      []string `json:"media"`
	Reputation []string `json:"reputation"`
	Unmatched  []string `json:"unmatched"`
}

// Columns returns the columns assigned to the given group.
func (g ColumnGroups) Columns(group MetricGroup) []string {
	switch group {
	case FinancialGroup:
		return g.Financial
	case MediaGroup:
		return g.Media
	case ReputationGroup:
		return g.Reputation
	default:
		return nil
	}
}

// Add appends a column to the given group. Unknown groups are ignored.
func (g *ColumnGroups) Add(group MetricGroup, column string) {
	switch group {
	case FinancialGroup:
		g.Financial = append(g.Financial, column)
	case MediaGroup:
		g.Media = append(g.Media, column)
	case ReputationGroup:
		g.Reputation = append(g.Reputation, column)
	}
}

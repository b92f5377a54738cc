package schema

// EntityResult holds the scores of a single entity after ranking.
type EntityResult struct {
	Company         string  `json:"company"`
	FinancialScore  float64 `json:"fin_score"`    // [0,1]
	MediaScore      float64 `json:"med_score"`    // [0,1]
	ReputationScore float64 `json:"rep_score"`    // [0,1]
	Composite       float64 `json:"integral"`     // weighted sum before rescaling, [0,1]
	Integral100     float64 `json:"integral_100"` // final composite, [0,100]
}

// GroupScore returns the entity's normalized score for a group.
func (e EntityResult) GroupScore(group MetricGroup) float64 {
	switch group {
	case FinancialGroup:
		return e.FinancialScore
	case MediaGroup:
		return e.MediaScore
	case ReputationGroup:
		return e.ReputationScore
	default:
		return 0
	}
}

// SourceInfo describes one supplied source table.
type SourceInfo struct {
	Group  MetricGroup `json:"group"`
	Path   string      `json:"path"`
	Rows   int         `json:"rows"`
	Loaded bool        `json:"loaded"`
}

// RankingResult is everything a ranking run produces.
type RankingResult struct {
	Sources  []SourceInfo   `json:"sources"`
	Groups   ColumnGroups   `json:"groups"`
	Weights  Weights        `json:"weights"`
	Unified  Table          `json:"-"`
	Total    int            `json:"total"`    // entities scored before the limit
	Entities []EntityResult `json:"entities"` // sorted by Integral100 descending
}

// ClassificationResult is the column inspection view of a unified table.
type ClassificationResult struct {
	Key        string       `json:"key"`
	Groups     ColumnGroups `json:"groups"`
	NonNumeric []string     `json:"non_numeric"` // grouped columns skipped by the group mean
}

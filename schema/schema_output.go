package schema

// Rating label values.
const (
	LeaderValue  = "Leader"
	StrongValue  = "Strong"
	AverageValue = "Average"
	WeakValue    = "Weak"
)

// EnrichedEntityResult adds presentation data to an EntityResult.
type EnrichedEntityResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	EntityResult
}

// GetPlainLabel returns a plain text rating label for a composite in [0,100].
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return LeaderValue
	case score >= 60:
		return StrongValue
	case score >= 40:
		return AverageValue
	default:
		return WeakValue
	}
}

// EnrichEntities adds rank and label to a list of ranked entities.
func EnrichEntities(entities []EntityResult) []EnrichedEntityResult {
	output := make([]EnrichedEntityResult, len(entities))
	for i, e := range entities {
		output[i] = EnrichedEntityResult{
			Rank:         i + 1,
			Label:        GetPlainLabel(e.Integral100),
			EntityResult: e,
		}
	}
	return output
}

package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// Weights is the validated group weight vector. The three components are
// non-negative and sum to 1. Build it with NewWeights.
type Weights struct {
	financial  float64
	media      float64
	reputation float64
}

// NewWeights validates raw group weights and rescales them to sum to 1.
func NewWeights(financial, media, reputation float64) (Weights, error) {
	for _, w := range []struct {
		group MetricGroup
		value float64
	}{
		{FinancialGroup, financial},
		{MediaGroup, media},
		{ReputationGroup, reputation},
	} {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) || w.value < 0 {
			return Weights{}, fmt.Errorf("%s weight %v: %w", w.group, w.value, ErrInvalidWeight)
		}
	}

	// Dividing by the largest weight first keeps the sum finite.
	top := max(financial, media, reputation)
	if top == 0 {
		return Weights{}, ErrZeroWeightSum
	}
	financial, media, reputation = financial/top, media/top, reputation/top
	sum := financial + media + reputation

	return Weights{
		financial:  financial / sum,
		media:      media / sum,
		reputation: reputation / sum,
	}, nil
}

// Financial returns the normalized financial weight.
func (w Weights) Financial() float64 { return w.financial }

// Media returns the normalized media weight.
func (w Weights) Media() float64 { return w.media }

// Reputation returns the normalized reputation weight.
func (w Weights) Reputation() float64 { return w.reputation }

// Of returns the normalized weight of a group.
func (w Weights) Of(group MetricGroup) float64 {
	switch group {
	case FinancialGroup:
		return w.financial
	case MediaGroup:
		return w.media
	case ReputationGroup:
		return w.reputation
	default:
		return 0
	}
}

// IsZero reports whether the vector was never built through NewWeights.
func (w Weights) IsZero() bool {
	return w.financial == 0 && w.media == 0 && w.reputation == 0
}

// MarshalJSON encodes the normalized weights keyed by group.
func (w Weights) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{
		string(FinancialGroup):  w.financial,
		string(MediaGroup):      w.media,
		string(ReputationGroup): w.reputation,
	})
}

package algo

import "math"

// Neutral is the score given when a series carries no information.
const Neutral = 0.5

// Normalize min-max rescales values to [0,1]. NaN and infinities mark missing values.
//
// Missing values are excluded from the min/max range and then receive Neutral.
// A series with no present values, or whose present values are all equal,
// maps to Neutral everywhere.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))

	lo, hi := math.Inf(1), math.Inf(-1)
	present := 0
	for _, v := range values {
		if isMissing(v) {
			continue
		}
		present++
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if present == 0 || hi == lo {
		for i := range out {
			out[i] = Neutral
		}
		return out
	}

	span := hi - lo
	halve := math.IsInf(span, 0)
	if halve {
		span = hi/2 - lo/2
	}

	for i, v := range values {
		switch {
		case isMissing(v):
			out[i] = Neutral
		case halve:
			out[i] = (v/2 - lo/2) / span
		default:
			out[i] = (v - lo) / span
		}
	}
	return out
}

// isMissing reports whether v stands for an absent value.
func isMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

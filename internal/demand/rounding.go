package demand

import "math"

// Rounding happens only at the presentation edge; the aggregation itself
// runs at full float64 precision and pivot cells are rounded after the
// cross-school summation.

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

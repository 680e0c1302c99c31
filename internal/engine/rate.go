package engine

import (
	"sort"

	"motordiag/internal/model"
)

// EstimateRate derives the effective sampling frequency from consecutive
// timestamp differences. The median interval is used so that gaps from
// missing data and duplicate timestamps do not skew the estimate.
//
// A return of exactly 0 means the rate could not be determined (fewer
// than two samples, or a non-positive median interval). Callers must
// treat 0 as a sentinel and never divide by it.
func EstimateRate(samples []model.Sample) float64 {
	if len(samples) < 2 {
		return 0
	}
	diffs := make([]float64, 0, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		diffs = append(diffs, samples[i].T.Sub(samples[i-1].T).Seconds())
	}
	sort.Float64s(diffs)
	n := len(diffs)
	var median float64
	if n%2 == 1 {
		median = diffs[n/2]
	} else {
		median = (diffs[n/2-1] + diffs[n/2]) / 2
	}
	if median <= 0 {
		return 0
	}
	return 1 / median
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"motordiag/internal/model"
)

func samplesAt(start time.Time, spacing time.Duration, n int) []model.Sample {
	out := make([]model.Sample, n)
	for i := range out {
		out[i] = model.Sample{T: start.Add(time.Duration(i) * spacing)}
	}
	return out
}

func TestEstimateRateConstantSpacing(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		spacing time.Duration
		want    float64
	}{
		{time.Second, 1},
		{100 * time.Millisecond, 10},
		{2 * time.Second, 0.5},
	}
	for _, c := range cases {
		got := EstimateRate(samplesAt(base, c.spacing, 50))
		assert.InDelta(t, c.want, got, 1e-9, "spacing %s", c.spacing)
	}
}

func TestEstimateRateDegenerate(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.Zero(t, EstimateRate(nil))
	assert.Zero(t, EstimateRate(samplesAt(base, time.Second, 1)))
	// All-identical timestamps: median interval 0.
	assert.Zero(t, EstimateRate(samplesAt(base, 0, 10)))
}

func TestEstimateRateMedianResistsGaps(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	samples := samplesAt(base, time.Second, 20)
	// One large outage gap must not move the median.
	for i := 10; i < len(samples); i++ {
		samples[i].T = samples[i].T.Add(time.Hour)
	}
	assert.InDelta(t, 1.0, EstimateRate(samples), 1e-9)
}

func TestEstimateRateDuplicateTimestamps(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	samples := []model.Sample{
		{T: base},
		{T: base},
		{T: base.Add(time.Second)},
		{T: base.Add(2 * time.Second)},
		{T: base.Add(3 * time.Second)},
	}
	// Diffs 0,1,1,1 -> median 1s.
	assert.InDelta(t, 1.0, EstimateRate(samples), 1e-9)
}

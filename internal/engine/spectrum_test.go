package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motordiag/internal/model"
)

func sinusoid(freq, rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}
	return out
}

func TestComputeSpectrumShape(t *testing.T) {
	sp := ComputeSpectrum(sinusoid(25, 200, 1024), 200)
	require.Len(t, sp.Freqs, 512)
	require.Len(t, sp.Mags, 512)
	assert.Zero(t, sp.Freqs[0])
	assert.InDelta(t, 200.0/1024, sp.Freqs[1]-sp.Freqs[0], 1e-12)
}

func TestComputeSpectrumSinusoidAmplitude(t *testing.T) {
	// 25 Hz lands exactly on bin 128 at rate 200, n 1024, so the 2/N
	// scaling recovers the unit amplitude.
	sp := ComputeSpectrum(sinusoid(25, 200, 1024), 200)
	peak, ok := DominantPeak(model.AxisX, sp)
	require.True(t, ok)
	assert.InDelta(t, 25.0, peak.Frequency, 1e-9)
	assert.InDelta(t, 1.0, peak.Amplitude, 1e-9)
}

func TestSpectralUnbalanceClassification(t *testing.T) {
	// rpm 1500 -> f0 = 25 Hz.
	rate := 200.0
	sp := ComputeSpectrum(sinusoid(25, rate, 1024), rate)
	peak, ok := DominantPeak(model.AxisX, sp)
	require.True(t, ok)
	binWidth := rate / 1024
	assert.InDelta(t, 25.0, peak.Frequency, binWidth)
	assert.Equal(t, model.LabelUnbalance, ClassifyPeak(peak, 1500))
}

func TestSpectralMisalignmentClassification(t *testing.T) {
	// 2 x f0 = 50 Hz dominates.
	rate := 200.0
	sp := ComputeSpectrum(sinusoid(50, rate, 1024), rate)
	peak, ok := DominantPeak(model.AxisZ, sp)
	require.True(t, ok)
	assert.Equal(t, model.LabelMisalignment, ClassifyPeak(peak, 1500))
}

func TestDominantPeakIncludesDCBin(t *testing.T) {
	// A constant signal transforms to an all-zero spectrum after mean
	// removal; the search then reports bin 0. The DC bin deliberately
	// stays inside the search.
	sp := ComputeSpectrum([]float64{3, 3, 3, 3, 3, 3, 3, 3}, 10)
	peak, ok := DominantPeak(model.AxisY, sp)
	require.True(t, ok)
	assert.Zero(t, peak.Frequency)
	assert.InDelta(t, 0.0, peak.Amplitude, 1e-12)
	assert.Equal(t, model.LabelNoDominant, ClassifyPeak(peak, 1500))
}

func TestComputeSpectrumEmpty(t *testing.T) {
	sp := ComputeSpectrum(nil, 100)
	assert.Empty(t, sp.Freqs)
	assert.Empty(t, sp.Mags)
	_, ok := DominantPeak(model.AxisX, sp)
	assert.False(t, ok)
}

func TestComputeSpectrumZeroRate(t *testing.T) {
	// Undetermined rate collapses all frequencies to 0 but must not
	// produce NaN or Inf.
	sp := ComputeSpectrum(sinusoid(5, 100, 64), 0)
	for _, f := range sp.Freqs {
		assert.Zero(t, f)
	}
	for _, m := range sp.Mags {
		assert.False(t, math.IsNaN(m) || math.IsInf(m, 0))
	}
}

package engine

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"motordiag/internal/model"
)

// ComputeSpectrum returns the one-sided FFT magnitude spectrum of vals:
// the mean is removed, the first ceil(N/2) bins are kept, magnitudes are
// scaled by 2/N, and frequencies step by rate/N.
func ComputeSpectrum(vals []float64, rate float64) model.Spectrum {
	n := len(vals)
	if n == 0 {
		return model.Spectrum{}
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(n)
	centered := make([]float64, n)
	for i, v := range vals {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)

	half := (n + 1) / 2
	freqs := make([]float64, half)
	mags := make([]float64, half)
	for k := 0; k < half; k++ {
		mags[k] = 2 * cmplx.Abs(coeffs[k]) / float64(n)
		freqs[k] = float64(k) * rate / float64(n)
	}
	return model.Spectrum{Freqs: freqs, Mags: mags}
}

// DominantPeak finds the single global maximum of the spectrum. Bin 0
// competes in the search: the mean removal in ComputeSpectrum keeps it
// near zero in practice, and excluding it would change output on inputs
// with near-DC drift, so the behavior is kept as is.
func DominantPeak(axis model.Axis, sp model.Spectrum) (model.SpectralPeak, bool) {
	if len(sp.Mags) == 0 {
		return model.SpectralPeak{}, false
	}
	best := 0
	for i, m := range sp.Mags {
		if m > sp.Mags[best] {
			best = i
		}
	}
	return model.SpectralPeak{
		Axis:      axis,
		Frequency: sp.Freqs[best],
		Amplitude: sp.Mags[best],
	}, true
}

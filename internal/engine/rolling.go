package engine

import "math"

const (
	rmsWindowSeconds = 60
	fallbackWindow   = 10
	stdWindow        = 3
)

// RMSWindow converts the sample rate into a nominal 60-second trailing
// window expressed in samples. An undetermined rate (0) falls back to a
// fixed 10-sample window rather than dividing by the sentinel.
func RMSWindow(rate float64) int {
	if rate <= 0 {
		return fallbackWindow
	}
	w := int(rate * rmsWindowSeconds)
	if w < 1 {
		w = 1
	}
	return w
}

// RollingRMS computes sqrt(mean(v^2)) over a strictly trailing window
// that includes the current sample. The window is causal so the statistic
// is available without lookahead. A minimum period of 1 means the first
// window-1 entries use partial windows instead of being undefined.
func RollingRMS(vals []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(vals))
	prefix := make([]float64, len(vals)+1)
	for i, v := range vals {
		prefix[i+1] = prefix[i] + v*v
	}
	for i := range vals {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		n := i + 1 - start
		out[i] = math.Sqrt((prefix[i+1] - prefix[start]) / float64(n))
	}
	return out
}

// RollingStd computes the population standard deviation (divide by n)
// over a strictly trailing window. Unlike RollingRMS there is no minimum
// period: the first window-1 entries are NaN and mean "no diagnosis yet".
func RollingStd(vals []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(vals))
	for i := range vals {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		start := i - window + 1
		var sum float64
		for j := start; j <= i; j++ {
			sum += vals[j]
		}
		mean := sum / float64(window)
		var m2 float64
		for j := start; j <= i; j++ {
			d := vals[j] - mean
			m2 += d * d
		}
		out[i] = math.Sqrt(m2 / float64(window))
	}
	return out
}

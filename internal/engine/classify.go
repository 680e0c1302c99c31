package engine

import (
	"math"

	"motordiag/internal/model"
)

// Thresholds are fixed constants in the raw engineering units of the
// input signal (e.g. velocity RMS in in/s or mm/s). No unit conversion
// is performed; the calibration assumes one unit convention throughout.
const (
	radialLimit    = 0.5
	axialLimit     = 0.35
	loosenessDiff  = 0.2
	stdDevLimit    = 0.05

	rpmTolerance      = 5.0
	bearingFreqFloor  = 500.0
	loosenessFreqCeil = 10.0
	loosenessAmpFloor = 0.1
)

// ClassifyRMS maps one row of per-axis rolling RMS values to fault
// labels. Every rule is evaluated (no short-circuit), comparisons are
// strict, and labels append in radial, axial, looseness order.
func ClassifyRMS(x, y, z float64) []model.FaultLabel {
	var labels []model.FaultLabel
	if x > radialLimit || y > radialLimit {
		labels = append(labels, model.LabelRadialHigh)
	}
	if z > axialLimit {
		labels = append(labels, model.LabelAxialHigh)
	}
	if math.Abs(x-y) > loosenessDiff {
		labels = append(labels, model.LabelLooseness)
	}
	return labels
}

// ClassifyStd is the std-dev mode variant: raw axis values are compared
// against the radial/axial limits, and an elevated rolling std-dev on any
// axis flags variable load.
func ClassifyStd(raw model.Sample, sx, sy, sz float64) []model.FaultLabel {
	var labels []model.FaultLabel
	if raw.X > radialLimit || raw.Y > radialLimit {
		labels = append(labels, model.LabelRadialHigh)
	}
	if raw.Z > axialLimit {
		labels = append(labels, model.LabelAxialHigh)
	}
	if sx > stdDevLimit || sy > stdDevLimit || sz > stdDevLimit {
		labels = append(labels, model.LabelVariableLoad)
	}
	return labels
}

// ClassifyPeak maps a dominant spectral peak to a fault label relative to
// shaft speed. First match wins, in this order; a peak satisfying more
// than one rule is classified by the earliest.
func ClassifyPeak(peak model.SpectralPeak, rpm float64) model.FaultLabel {
	peakRPM := peak.Frequency * 60
	switch {
	case math.Abs(peakRPM-rpm) < rpmTolerance:
		return model.LabelUnbalance
	case math.Abs(peakRPM-2*rpm) < rpmTolerance:
		return model.LabelMisalignment
	case peak.Frequency > bearingFreqFloor:
		return model.LabelBearingFault
	case peak.Frequency > 0 && peak.Frequency < loosenessFreqCeil && peak.Amplitude > loosenessAmpFloor:
		return model.LabelLowFreqLoose
	}
	return model.LabelNoDominant
}

package model

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeRMS      Mode = "rms"
	ModeStdDev   Mode = "stddev"
	ModeSpectral Mode = "spectral"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRMS:
		return ModeRMS, nil
	case ModeStdDev, "std", "std-dev":
		return ModeStdDev, nil
	case ModeSpectral, "fft":
		return ModeSpectral, nil
	}
	return "", fmt.Errorf("unknown mode: %q", s)
}

type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

func ParseAxis(s string) (Axis, error) {
	switch Axis(strings.ToLower(strings.TrimSpace(s))) {
	case AxisX:
		return AxisX, nil
	case AxisY:
		return AxisY, nil
	case AxisZ:
		return AxisZ, nil
	}
	return "", fmt.Errorf("unknown axis: %q", s)
}

type Span string

const (
	SpanDay  Span = "24h"
	SpanWeek Span = "7d"
	SpanAll  Span = "all"
)

func ParseSpan(s string) (Span, error) {
	switch Span(strings.ToLower(strings.TrimSpace(s))) {
	case SpanDay, "day":
		return SpanDay, nil
	case SpanWeek, "week":
		return SpanWeek, nil
	case SpanAll, "":
		return SpanAll, nil
	}
	return "", fmt.Errorf("unknown span: %q", s)
}

// Table is a raw tabular dataset as handed over by a workbook source.
// Cells are untyped text; empty or whitespace-only cells are nulls.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Sample is one normalized row. Z always carries the axial channel after
// relabeling; X and Y carry the two radial channels.
type Sample struct {
	T time.Time
	X float64
	Y float64
	Z float64
}

type FaultLabel string

const (
	LabelNormal       FaultLabel = "Normal"
	LabelRadialHigh   FaultLabel = "Radial High"
	LabelAxialHigh    FaultLabel = "Axial High"
	LabelLooseness    FaultLabel = "Looseness"
	LabelVariableLoad FaultLabel = "Looseness or Variable Load"

	LabelUnbalance    FaultLabel = "Likely Unbalance"
	LabelMisalignment FaultLabel = "Possible Misalignment"
	LabelBearingFault FaultLabel = "Possible Bearing Fault"
	LabelLowFreqLoose FaultLabel = "Possible Looseness"
	LabelNoDominant   FaultLabel = "No dominant fault detected"
)

type Diagnosis struct {
	T      time.Time    `json:"timestamp"`
	Labels []FaultLabel `json:"labels,omitempty"`
}

// Summary renders the label set for reporting. An empty set never escapes
// as an empty string; it reads "Normal".
func (d Diagnosis) Summary() string {
	if len(d.Labels) == 0 {
		return string(LabelNormal)
	}
	parts := make([]string, 0, len(d.Labels))
	for _, l := range d.Labels {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ", ")
}

type SpectralPeak struct {
	Axis      Axis    `json:"axis"`
	Frequency float64 `json:"frequency_hz"`
	Amplitude float64 `json:"amplitude"`
}

// Spectrum is a one-sided magnitude spectrum. Freqs and Mags have equal
// length and align bin for bin.
type Spectrum struct {
	Freqs []float64 `json:"freqs"`
	Mags  []float64 `json:"mags"`
}

type AxisDiagnosis struct {
	Axis     Axis         `json:"axis"`
	Peak     SpectralPeak `json:"peak"`
	Label    FaultLabel   `json:"label"`
	Spectrum Spectrum     `json:"spectrum"`
}

type SheetResult struct {
	Sheet       string          `json:"sheet"`
	Mode        Mode            `json:"mode"`
	Orientation string          `json:"orientation,omitempty"`
	RPM         float64         `json:"rpm,omitempty"`
	SampleRate  float64         `json:"sample_rate_hz"`
	Window      int             `json:"window,omitempty"`
	Rows        int             `json:"rows"`
	Faults      []Diagnosis     `json:"faults,omitempty"`
	Axes        []AxisDiagnosis `json:"axes,omitempty"`
}

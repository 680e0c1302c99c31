package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"motordiag/internal/model"
	"motordiag/internal/normalize"
)

var (
	ErrNoData    = errors.New("not enough data to diagnose")
	ErrBadParams = errors.New("invalid parameters")
)

// Params is the immutable per-run configuration. Orientation is carried
// into the result verbatim; no classification rule consumes it.
type Params struct {
	AxialAxis   model.Axis `json:"axial_axis"`
	Mode        model.Mode `json:"mode"`
	RPM         float64    `json:"rpm,omitempty"`
	Span        model.Span `json:"span"`
	MaxRows     int        `json:"max_rows,omitempty"`
	Orientation string     `json:"orientation,omitempty"`
}

func (p Params) Validate() error {
	switch p.AxialAxis {
	case model.AxisX, model.AxisY, model.AxisZ:
	default:
		return fmt.Errorf("%w: axial axis %q", ErrBadParams, p.AxialAxis)
	}
	switch p.Mode {
	case model.ModeRMS, model.ModeStdDev, model.ModeSpectral:
	default:
		return fmt.Errorf("%w: mode %q", ErrBadParams, p.Mode)
	}
	switch p.Span {
	case model.SpanDay, model.SpanWeek, model.SpanAll:
	default:
		return fmt.Errorf("%w: span %q", ErrBadParams, p.Span)
	}
	if p.Mode == model.ModeSpectral && p.RPM <= 0 {
		return fmt.Errorf("%w: spectral mode requires rpm > 0", ErrBadParams)
	}
	if p.MaxRows < 0 {
		return fmt.Errorf("%w: max rows %d", ErrBadParams, p.MaxRows)
	}
	return nil
}

// Run executes one diagnosis over a raw table: normalize, estimate the
// sample rate over the full series, filter to the requested span, cap to
// the most recent rows, then dispatch on mode.
func Run(tbl *model.Table, p Params, logger *slog.Logger) (*model.SheetResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	samples, err := normalize.Normalize(tbl, p.AxialAxis)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	rate := EstimateRate(samples)
	samples = FilterSpan(samples, p.Span)
	samples = Tail(samples, p.MaxRows)
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	if logger != nil {
		logger.Debug("sheet prepared",
			"sheet", tbl.Name,
			"rows", len(samples),
			"sample_rate_hz", rate,
			"mode", p.Mode,
		)
	}

	res := &model.SheetResult{
		Sheet:       tbl.Name,
		Mode:        p.Mode,
		Orientation: p.Orientation,
		RPM:         p.RPM,
		SampleRate:  rate,
		Rows:        len(samples),
	}
	xs, ys, zs := splitAxes(samples)

	switch p.Mode {
	case model.ModeRMS:
		window := RMSWindow(rate)
		res.Window = window
		xr := RollingRMS(xs, window)
		yr := RollingRMS(ys, window)
		zr := RollingRMS(zs, window)
		for i := range samples {
			labels := ClassifyRMS(xr[i], yr[i], zr[i])
			if len(labels) > 0 {
				res.Faults = append(res.Faults, model.Diagnosis{T: samples[i].T, Labels: labels})
			}
		}
	case model.ModeStdDev:
		res.Window = stdWindow
		sx := RollingStd(xs, stdWindow)
		sy := RollingStd(ys, stdWindow)
		sz := RollingStd(zs, stdWindow)
		for i := range samples {
			// Partial windows carry NaN and are excluded, not Normal.
			if math.IsNaN(sx[i]) || math.IsNaN(sy[i]) || math.IsNaN(sz[i]) {
				continue
			}
			labels := ClassifyStd(samples[i], sx[i], sy[i], sz[i])
			if len(labels) > 0 {
				res.Faults = append(res.Faults, model.Diagnosis{T: samples[i].T, Labels: labels})
			}
		}
	case model.ModeSpectral:
		for _, ax := range []struct {
			axis model.Axis
			vals []float64
		}{
			{model.AxisX, xs},
			{model.AxisY, ys},
			{model.AxisZ, zs},
		} {
			sp := ComputeSpectrum(ax.vals, rate)
			ad := model.AxisDiagnosis{Axis: ax.axis, Spectrum: sp, Label: model.LabelNoDominant}
			if peak, ok := DominantPeak(ax.axis, sp); ok {
				ad.Peak = peak
				ad.Label = ClassifyPeak(peak, p.RPM)
			}
			res.Axes = append(res.Axes, ad)
		}
	}
	return res, nil
}

// FilterSpan keeps samples at or after the span cutoff, measured back
// from the latest sample's timestamp.
func FilterSpan(samples []model.Sample, span model.Span) []model.Sample {
	var d time.Duration
	switch span {
	case model.SpanDay:
		d = 24 * time.Hour
	case model.SpanWeek:
		d = 7 * 24 * time.Hour
	default:
		return samples
	}
	if len(samples) == 0 {
		return samples
	}
	cutoff := samples[len(samples)-1].T.Add(-d)
	i := sort.Search(len(samples), func(i int) bool {
		return !samples[i].T.Before(cutoff)
	})
	return samples[i:]
}

// Tail returns the most recent n samples; n <= 0 means uncapped.
func Tail(samples []model.Sample, n int) []model.Sample {
	if n <= 0 || n >= len(samples) {
		return samples
	}
	return samples[len(samples)-n:]
}

func splitAxes(samples []model.Sample) (xs, ys, zs []float64) {
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	zs = make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.X
		ys[i] = s.Y
		zs[i] = s.Z
	}
	return xs, ys, zs
}

package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"motordiag/internal/model"
)

// WriteSpectrumPNG renders one axis spectrum as a line chart with the
// dominant peak annotated.
func WriteSpectrumPNG(w io.Writer, sheet string, ad model.AxisDiagnosis) error {
	if len(ad.Spectrum.Freqs) < 2 {
		return errors.New("spectrum too short to plot")
	}
	graph := chart.Chart{
		Title: fmt.Sprintf("%s - %s axis spectrum", sheet, ad.Axis),
		XAxis: chart.XAxis{Name: "Frequency (Hz)"},
		YAxis: chart.YAxis{Name: "Amplitude"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    string(ad.Axis),
				XValues: ad.Spectrum.Freqs,
				YValues: ad.Spectrum.Mags,
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{
					{
						XValue: ad.Peak.Frequency,
						YValue: ad.Peak.Amplitude,
						Label:  fmt.Sprintf("%.2f Hz: %s", ad.Peak.Frequency, ad.Label),
					},
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

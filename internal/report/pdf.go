package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"motordiag/internal/batch"
	"motordiag/internal/model"
)

const sheetReportRows = 50

// WriteSummaryPDF renders the cross-sheet batch report: one grid row per
// diagnosis, grouped by asset sheet.
func WriteSummaryPDF(path string, summary *batch.Summary) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Summary of Issues Found Across All Sheets", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeHeader(pdf, []colSpec{
		{"Asset Sheet", 45},
		{"Timestamp", 55},
		{"Issue Detected", 95},
	})
	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range summary.Entries {
		for _, d := range entry.Faults {
			writeRow(pdf, []colSpec{
				{entry.Sheet, 45},
				{d.T.Format(timestampFormat), 55},
				{d.Summary(), 95},
			})
		}
		for _, ad := range entry.Axes {
			writeRow(pdf, []colSpec{
				{entry.Sheet, 45},
				{fmt.Sprintf("%s axis @ %.2f Hz", ad.Axis, ad.Peak.Frequency), 55},
				{string(ad.Label), 95},
			})
		}
	}
	return pdf.OutputFileAndClose(path)
}

// WriteSheetPDF renders the single-sheet report with the last
// sheetReportRows fault rows.
func WriteSheetPDF(path string, res *model.SheetResult) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Motor Diagnosis Report - "+res.Sheet, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	switch res.Mode {
	case model.ModeSpectral:
		writeHeader(pdf, []colSpec{
			{"Axis", 30},
			{"Peak Frequency (Hz)", 55},
			{"Peak Amplitude", 45},
			{"Diagnosis", 65},
		})
		pdf.SetFont("Helvetica", "", 10)
		for _, ad := range res.Axes {
			writeRow(pdf, []colSpec{
				{string(ad.Axis), 30},
				{fmt.Sprintf("%.3f", ad.Peak.Frequency), 55},
				{fmt.Sprintf("%.4f", ad.Peak.Amplitude), 45},
				{string(ad.Label), 65},
			})
		}
	default:
		writeHeader(pdf, []colSpec{
			{"Timestamp", 70},
			{"Diagnosis", 125},
		})
		pdf.SetFont("Helvetica", "", 10)
		faults := res.Faults
		if len(faults) > sheetReportRows {
			faults = faults[len(faults)-sheetReportRows:]
		}
		for _, d := range faults {
			writeRow(pdf, []colSpec{
				{d.T.Format(timestampFormat), 70},
				{d.Summary(), 125},
			})
		}
	}
	return pdf.OutputFileAndClose(path)
}

type colSpec struct {
	text  string
	width float64
}

func writeHeader(pdf *fpdf.Fpdf, cols []colSpec) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(211, 211, 211)
	for _, c := range cols {
		pdf.CellFormat(c.width, 8, c.text, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeRow(pdf *fpdf.Fpdf, cols []colSpec) {
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.text, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

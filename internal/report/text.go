package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"

	"motordiag/internal/batch"
	"motordiag/internal/model"
)

const timestampFormat = "2006-01-02 15:04:05"

// WriteText renders a batch summary as a plain table for terminal
// output.
func WriteText(w io.Writer, summary *batch.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHEET\tTIMESTAMP\tISSUE")
	for _, entry := range summary.Entries {
		for _, d := range entry.Faults {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Sheet, d.T.Format(timestampFormat), d.Summary())
		}
		for _, ad := range entry.Axes {
			fmt.Fprintf(tw, "%s\t%s axis @ %.2f Hz\t%s\n", entry.Sheet, ad.Axis, ad.Peak.Frequency, ad.Label)
		}
	}
	for _, sk := range summary.Skipped {
		fmt.Fprintf(tw, "%s\t-\tskipped: %s\n", sk.Sheet, sk.Reason)
	}
	return tw.Flush()
}

// WriteCSV exports diagnosis rows as sheet, timestamp, issue records.
func WriteCSV(w io.Writer, summary *batch.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sheet", "timestamp", "issue"}); err != nil {
		return err
	}
	for _, entry := range summary.Entries {
		for _, d := range entry.Faults {
			if err := cw.Write([]string{entry.Sheet, d.T.Format(timestampFormat), d.Summary()}); err != nil {
				return err
			}
		}
		for _, ad := range entry.Axes {
			rec := []string{entry.Sheet, fmt.Sprintf("%s axis @ %.2f Hz", ad.Axis, ad.Peak.Frequency), string(ad.Label)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSheetCSV exports one sheet's fault rows.
func WriteSheetCSV(w io.Writer, res *model.SheetResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "diagnosis"}); err != nil {
		return err
	}
	for _, d := range res.Faults {
		if err := cw.Write([]string{d.T.Format(timestampFormat), d.Summary()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// motordiag diagnoses rotating machinery faults from three-channel
// accelerometer time series: rolling-RMS and std-dev threshold
// classification in the time domain, and FFT peak classification against
// shaft speed in the frequency domain.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "motordiag",
		Short: "Vibration fault diagnosis for motors and pumps",
		Long: `motordiag analyzes multi-axis vibration data from spreadsheet
workbooks, csv files, or database tables. Each asset sheet carries
per-axis timestamp and value columns (t(x), x, t(y), y, t(z), z);
one axis is declared axial and the diagnosis runs per sheet.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newBatchCmd(), newServeCmd())

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

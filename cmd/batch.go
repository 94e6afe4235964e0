package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfd/internal/export"
	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/spf13/cobra"
)

var (
	batchInput  string
	batchOutput string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every beam listed in a spreadsheet",
	Long: `Read beams from the first sheet of an XLSX workbook, one per row, with
the columns length (m), load (N) and position (m). A header row and
blank rows are skipped. Every row is analyzed on its own; invalid rows
are reported without stopping the run.

Examples:
  gosfd batch -f beams.xlsx
  gosfd batch -f beams.xlsx -o results.xlsx`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInput, "file", "f", "", "Input workbook (.xlsx) [required]")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write the results to this workbook")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	in, err := os.Open(batchInput)
	if err != nil {
		return err
	}
	outcomes, err := export.ReadBatch(in)
	in.Close()
	if err != nil {
		return err
	}

	failed := 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Row\tL\tP\ta\tMax V (N)\tMax M (Nm)\tStatus\n")
	fmt.Fprintf(w, "  ───\t─\t─\t─\t─────────\t──────────\t──────\n")
	for _, o := range outcomes {
		if o.Result == nil {
			failed++
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t-\t-\t%s\n", o.Row, o.Length, o.Load, o.Position, o.Err)
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\tOK\n",
			o.Row, o.Length, o.Load, o.Position, o.Result.MaxShear, o.Result.MaxMoment)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %d rows, %d invalid\n", len(outcomes), failed)
	logger.L().Info("batch.completed", "rows", len(outcomes), "invalid", failed)

	if batchOutput == "" {
		return nil
	}

	f, err := os.Create(batchOutput)
	if err != nil {
		return err
	}
	if err := export.WriteBatchXLSX(f, outcomes); err != nil {
		f.Close()
		return fmt.Errorf("write results: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Results saved to %s\n", batchOutput)
	return nil
}

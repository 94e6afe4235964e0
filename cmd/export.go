package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/alexiusacademia/gosfd/internal/export"
	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/spf13/cobra"
)

var (
	exportIn     beamInput
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the sampled diagrams as CSV or XLSX",
	Long: `Export the 100 stations (x, shear force, bending moment) of the
analysis. The format follows the file extension: .csv or .xlsx.
Use -o - to write CSV to standard output.

Examples:
  gosfd export -L 10 -P 100 -a 5 -o diagram.csv
  gosfd export -L 10 -P 100 -a 5 -o diagram.xlsx
  gosfd export -L 10 -P 100 -a 5 -o -`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportIn.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "sfd-bmd.csv", "Output file (.csv, .xlsx or - for stdout)")
}

func exportWriter(path string) (func(io.Writer, *beam.Result) error, error) {
	if path == "-" {
		return export.WriteCSV, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return export.WriteCSV, nil
	case ".xlsx":
		return export.WriteXLSX, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use .csv or .xlsx)", filepath.Ext(path))
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	write, err := exportWriter(exportOutput)
	if err != nil {
		return err
	}

	res, err := exportIn.compute()
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		return write(cmd.OutOrStdout(), res)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return err
	}
	if err := write(f, res); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.L().Info("export.saved", "path", exportOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "Diagram data saved to %s\n", exportOutput)
	return nil
}

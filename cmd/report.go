package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/alexiusacademia/gosfd/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportIn      beamInput
	reportOutput  string
	reportTitle   string
	reportProject string
	reportAuthor  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF report of the analysis",
	Long: `Write an A4 PDF report with the input data, support reactions,
maximum readings, the combined diagram and a table of stations.

Project and author default to the report section of the config file.

Examples:
  gosfd report -L 10 -P 100 -a 5 -o beam.pdf --project "Footbridge" --author "J. Cruz"`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportIn.register(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "sfd-bmd-report.pdf", "Output PDF file")
	reportCmd.Flags().StringVar(&reportTitle, "title", report.DefaultTitle, "Report title")
	reportCmd.Flags().StringVar(&reportProject, "project", "", "Project name")
	reportCmd.Flags().StringVar(&reportAuthor, "author", "", "Author name")
}

func runReport(cmd *cobra.Command, args []string) error {
	res, err := reportIn.compute()
	if err != nil {
		return err
	}

	meta := report.Meta{
		Title:   reportTitle,
		Project: cfg.Report.Project,
		Author:  cfg.Report.Author,
		Date:    time.Now(),
	}
	if reportProject != "" {
		meta.Project = reportProject
	}
	if reportAuthor != "" {
		meta.Author = reportAuthor
	}

	f, err := os.Create(reportOutput)
	if err != nil {
		return err
	}
	if err := report.WritePDF(f, res, meta); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.L().Info("report.saved", "path", reportOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", reportOutput)
	return nil
}

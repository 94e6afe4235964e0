package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gosfd/internal/config"
	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/alexiusacademia/gosfd/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	// Loaded in PersistentPreRunE, available to every subcommand
	cfg      config.Config
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "gosfd",
	Short: "Shear Force and Bending Moment Diagram Tool",
	Long: `gosfd - Go Shear Force & Bending Moment Diagrams

A CLI tool for the analysis of a simply supported beam
subjected to a single point load.

This tool helps structural engineers:
  - Compute the support reactions Ra and Rb
  - Sample the shear force and bending moment along the span
  - Report the maximum shear force and bending moment
  - Plot, export and report the diagrams
  - Factor the point load using NSCP load combinations`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if debug {
			c.Log.Debug = true
		}
		cleanup, err := logger.Setup(logger.Config{Dir: c.Log.Dir, Debug: c.Log.Debug})
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}
		cfg = c
		closeLog = cleanup
		logger.L().Debug("cmd.start", "command", cmd.CommandPath(), "version", version.Version)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gosfd v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Shear Force & Bending Moment Diagrams                ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Analysis of a simply supported beam under a single point load.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Support reactions, shear force and bending moment")
		fmt.Fprintln(out, "    • Terminal charts, PNG/SVG/PDF plots and PDF reports")
		fmt.Fprintln(out, "    • CSV/XLSX export and spreadsheet batch runs")
		fmt.Fprintln(out, "    • Factored point load using NSCP load combinations")
		fmt.Fprintln(out, "    • Interactive form and HTTP API")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gosfd --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if closeLog != nil {
		closeLog()
		closeLog = nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

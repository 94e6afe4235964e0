package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfd/internal/nscp"
	"github.com/spf13/cobra"
)

var (
	// Unfactored point loads (N)
	pointLoads nscp.PointLoads

	// Options
	showAll       bool
	useSimplified bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Calculate factored point load using NSCP load combinations",
	Long: `Calculate the factored point load (Pu) based on NSCP 2015 load combinations.

Provide the unfactored components of the point load and this command will
compute the factored load for all applicable NSCP load combinations.
The governing value can be used as --load in the other commands.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Simple gravity loads (dead + live)
  gosfd load --dead 5000 --live 3000

  # With wind load
  gosfd load --dead 5000 --live 3000 --wind 2000

  # Show all combinations
  gosfd load --dead 5000 --live 3000 --all`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	// Load flags
	loadCmd.Flags().Float64VarP(&pointLoads.Dead, "dead", "d", 0, "Dead load component (N)")
	loadCmd.Flags().Float64VarP(&pointLoads.Live, "live", "l", 0, "Live load component (N)")
	loadCmd.Flags().Float64VarP(&pointLoads.Roof, "roof", "r", 0, "Roof live load component (N)")
	loadCmd.Flags().Float64VarP(&pointLoads.Wind, "wind", "w", 0, "Wind load component (N)")
	loadCmd.Flags().Float64VarP(&pointLoads.Earthquake, "earthquake", "e", 0, "Earthquake load component (N)")
	loadCmd.Flags().Float64VarP(&pointLoads.Rain, "rain", "R", 0, "Rain load component (N)")

	// Options
	loadCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	loadCmd.Flags().BoolVarP(&useSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if pointLoads.IsZero() {
		return fmt.Errorf("please provide at least one unfactored load (see 'gosfd load --help')")
	}

	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          NSCP 2015 FACTORED POINT LOAD CALCULATION")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "UNFACTORED LOADS (N):")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range []struct {
		label string
		value float64
	}{
		{"Dead Load (D)", pointLoads.Dead},
		{"Live Load (L)", pointLoads.Live},
		{"Roof Live Load (Lr)", pointLoads.Roof},
		{"Wind Load (W)", pointLoads.Wind},
		{"Earthquake Load (E)", pointLoads.Earthquake},
		{"Rain Load (R)", pointLoads.Rain},
	} {
		if c.value != 0 {
			fmt.Fprintf(w, "  %s:\t%.2f\n", c.label, c.value)
		}
	}
	w.Flush()
	fmt.Fprintln(out)

	maxPu, governingCombo, ok := nscp.GoverningLoad(pointLoads, combinations)

	if showAll {
		fmt.Fprintln(out, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tPu (N)\n")
		fmt.Fprintf(w, "  ─\t───────────\t──────\n")

		for _, combo := range combinations {
			pu := combo.FactoredLoad(pointLoads)
			marker := ""
			if ok && combo.ID == governingCombo.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, pu, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if !ok {
		return fmt.Errorf("no load combination gives a positive point load")
	}

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", governingCombo.ID, governingCombo.Description)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ╔═══════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  FACTORED LOAD (Pu) = %.2f N  \n", maxPu)
	fmt.Fprintf(out, "  ╚═══════════════════════════════════╝\n")
	fmt.Fprintln(out)
	return nil
}

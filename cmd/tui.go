package cmd

import (
	"github.com/alexiusacademia/gosfd/internal/logger"
	"github.com/alexiusacademia/gosfd/internal/tui"
	"github.com/spf13/cobra"
)

var tuiIn beamInput

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive calculator form",
	Long: `Open a terminal form with the beam length, point load and load
position fields. Press enter to calculate; the maxima and both diagrams
are drawn below the form.

The beam flags, when given, prefill the form.

Examples:
  gosfd tui
  gosfd tui -L 10 -P 100 -a 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(tui.Deps{
			Length:   tuiIn.length,
			Load:     tuiIn.load,
			Position: tuiIn.position,
			Logger:   logger.L(),
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiIn.register(tuiCmd)
}

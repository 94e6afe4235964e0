package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosfd/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gosfd",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gosfd v%s\n", version.Version)
		fmt.Fprintf(out, "Build: %s (%s)\n", version.BuildTime, version.GitCommit)
		fmt.Fprintln(out, "Shear Force and Bending Moment Diagram Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

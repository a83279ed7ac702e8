package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/yamusic-grabber/internal/version"
)

//nolint:gochecknoglobals,lll // Cobra commands require global definitions for proper command-line parsing and execution.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information.",
	Args:  cobra.NoArgs,
	// Build information does not depend on the configuration.
	PersistentPreRun: func(_ *cobra.Command, _ []string) {},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register subcommands.
func init() {
	rootCmd.AddCommand(versionCmd)
}

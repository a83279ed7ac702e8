package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/yamusic-grabber/internal/app"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
)

//nolint:gochecknoglobals,lll // Cobra commands require global definitions for proper command-line parsing and execution.
var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Manage credentials.",
	}

	authTokenCmd = &cobra.Command{
		Use:   "token {value}",
		Short: "Persist an OAuth token or Session_id cookie into the configuration file.",
		Args:  cobra.ExactArgs(1),
		// The credential may not exist yet, so the configuration is loaded
		// leniently: a missing file is fine, it will be created on save.
		PersistentPreRun: initConfigLenient,
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAuthTokenCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to register subcommands.
func init() {
	authCmd.AddCommand(authTokenCmd)
	rootCmd.AddCommand(authCmd)
}

func initConfigLenient(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err == nil {
		logger.SetLevel(appConfig.ParsedLogLevel)

		return
	}

	var pathErr *os.PathError
	if !errors.As(err, &pathErr) && !os.IsNotExist(err) {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	//nolint:exhaustruct // Only the credential matters before the first real run.
	appConfig = &config.Config{}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/yamusic-grabber/internal/app"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "yamusic-grabber [flags] {track IDs, URLs or .txt lists}",
		Short: "Download tracks and playlists through a persistent queue.",
		Long: `Yamusic Grabber downloads audio through a persistent download queue.
References are enqueued, deduplicated against the local catalog, and a worker
drains the queue one track at a time: download, decrypt, remux, tag, publish.

References can be:
- Bare track IDs
- Track page URLs
- Playlist URLs or "owner:kind" pairs
- Paths of text files holding one reference per line

Running without references resumes whatever is still queued.`,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, refs []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			clearPending, _ := cmd.Flags().GetBool("clear-pending")

			app.ExecuteRootCommand(cmd.Context(), appConfig, refs, clearPending)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save downloaded files (the path will be created if it doesn't exist).")

	rootCmdFlags.StringP(
		"quality",
		"q",
		"",
		fmt.Sprintf("preferred quality tier: '%s', '%s' or '%s'.",
			config.QualityLossless, config.QualityHQ, config.QualityNQ))

	rootCmdFlags.StringP(
		"speed-limit",
		"s",
		"",
		"set download speed limit in bytes per second, for example: 500KB, 1MB, 1.5MB.")

	rootCmdFlags.Bool(
		"clear-pending",
		false,
		"drop unfinished queue items before enqueueing the new references.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("quality"); flag != nil && flag.Changed {
		cfg.Quality, _ = flags.GetString("quality")
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	return config.ValidateConfig(cfg)
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/yamusic-grabber/internal/app"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/store"
)

//nolint:gochecknoglobals,lll // Cobra commands require global definitions for proper command-line parsing and execution.
var (
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print queue counts, catalog totals and the head of the queue.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteStatusCommand(cmd.Context(), validatedConfig(cmd))
		},
	}

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Remove orphaned staging files and catalog rows whose file is gone.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteSweepCommand(cmd.Context(), validatedConfig(cmd))
		},
	}

	clearCmd = &cobra.Command{
		Use:   "clear {completed|pending|all}",
		Short: "Remove queue items in bulk.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			scope := store.ClearScope(args[0])

			switch scope {
			case store.ClearScopeCompleted, store.ClearScopePending, store.ClearScopeAll:
			default:
				logger.Fatalf(cmd.Context(), "Unknown scope '%s', expected 'completed', 'pending' or 'all'", args[0])
			}

			app.ExecuteClearCommand(cmd.Context(), validatedConfig(cmd), scope)
		},
	}

	removeCmd = &cobra.Command{
		Use:   "remove {item IDs}",
		Short: "Remove the queue items with the given IDs.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ids := make([]int64, 0, len(args))

			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					logger.Fatalf(cmd.Context(), "Invalid item ID '%s'", arg)
				}

				ids = append(ids, id)
			}

			app.ExecuteRemoveCommand(cmd.Context(), validatedConfig(cmd), ids)
		},
	}

	requeueCmd = &cobra.Command{
		Use:   "requeue",
		Short: "Move failed items back into the queue.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteRequeueCommand(cmd.Context(), validatedConfig(cmd))
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to register subcommands.
func init() {
	rootCmd.AddCommand(statusCmd, sweepCmd, clearCmd, removeCmd, requeueCmd)
}

// validatedConfig validates the loaded configuration and exits on failure.
func validatedConfig(cmd *cobra.Command) *config.Config {
	if err := config.ValidateConfig(appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "%v", fmt.Errorf("invalid configuration: %w", err))
	}

	return appConfig
}

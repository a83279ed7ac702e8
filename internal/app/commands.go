package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/service/grabber"
	"github.com/oshokin/yamusic-grabber/internal/store"
	"github.com/oshokin/yamusic-grabber/internal/utils"
)

// statusQueueHead is how many queue rows the status command prints.
const statusQueueHead = 10

const bytesPerMiB = 1024 * 1024

// ExecuteRootCommand enqueues the given references and runs the worker until
// the queue drains. References can be track IDs, track or playlist URLs, or
// paths of text files holding one reference per line.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, refs []string, clearPrevious bool) {
	expandedRefs, err := expandReferences(refs)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read reference list: %v", err)
	}

	withComponents(ctx, cfg, func(c *components) error {
		if len(expandedRefs) > 0 {
			result, addErr := c.controller.AddTracks(ctx, expandedRefs, clearPrevious)
			if addErr != nil && !errors.Is(addErr, grabber.ErrNothingToAdd) {
				return addErr
			}

			if addErr == nil && result.Added == 0 {
				logger.Infof(ctx, "Nothing new to download, all %d tracks are already known", result.Skipped())
			}
		}

		sweepStaging(ctx, c)

		if runErr := c.controller.Run(ctx); runErr != nil {
			return runErr
		}

		printSummary(ctx, c)

		return nil
	})
}

// ExecuteStatusCommand prints queue counts, the paused flag, catalog totals
// and the head of the queue.
func ExecuteStatusCommand(ctx context.Context, cfg *config.Config) {
	withComponents(ctx, cfg, func(c *components) error {
		stats, err := c.controller.GetStats(ctx)
		if err != nil {
			return err
		}

		paused, _, err := c.store.GetSetting(ctx, store.SettingDownloadsPaused)
		if err != nil {
			return err
		}

		logger.Infof(ctx, "Queue:")

		for _, status := range []string{
			store.StatusPending, store.StatusQueued, store.StatusDownloading,
			store.StatusCompleted, store.StatusError,
		} {
			if count := stats.Counts[status]; count > 0 {
				logger.Infof(ctx, "  %-12s %d", status+":", count)
			}
		}

		if len(stats.Counts) == 0 {
			logger.Infof(ctx, "  empty")
		}

		if paused == "true" {
			logger.Infof(ctx, "Downloads are paused")
		}

		logger.Infof(ctx, "Downloaded:   %d tracks, %s",
			stats.Finished.Count, humanize.IBytes(uint64(stats.Finished.TotalSizeMiB*bytesPerMiB)))

		items, err := c.controller.GetQueue(ctx, statusQueueHead)
		if err != nil {
			return err
		}

		for _, item := range items {
			logger.Infof(ctx, "  #%d [%s] %s - %s (%d%%)",
				item.ID, item.Status, item.Artist, item.Title, item.Progress)
		}

		return nil
	})
}

// ExecuteSweepCommand removes orphaned staging files and catalog rows whose
// file no longer exists.
func ExecuteSweepCommand(ctx context.Context, cfg *config.Config) {
	withComponents(ctx, cfg, func(c *components) error {
		report, err := c.controller.Sweep(ctx)
		if err != nil {
			return err
		}

		logger.Infof(ctx, "Staging files removed: %d", report.StagingRemoved)
		logger.Infof(ctx, "Catalog rows checked:  %d", report.Checked)
		logger.Infof(ctx, "Missing files found:   %d", report.Missing)
		logger.Infof(ctx, "Catalog rows removed:  %d", report.Deleted)

		return nil
	})
}

// ExecuteClearCommand removes queue rows in the given scope.
func ExecuteClearCommand(ctx context.Context, cfg *config.Config, scope store.ClearScope) {
	withComponents(ctx, cfg, func(c *components) error {
		_, err := c.controller.Clear(ctx, scope)

		return err
	})
}

// ExecuteRemoveCommand removes the queue rows with the given IDs.
func ExecuteRemoveCommand(ctx context.Context, cfg *config.Config, ids []int64) {
	withComponents(ctx, cfg, func(c *components) error {
		removed, err := c.controller.RemoveSelected(ctx, ids)
		if err != nil {
			return err
		}

		logger.Infof(ctx, "Removed %d items from the queue", removed)

		return nil
	})
}

// ExecuteRequeueCommand moves failed items back into the queue.
func ExecuteRequeueCommand(ctx context.Context, cfg *config.Config) {
	withComponents(ctx, cfg, func(c *components) error {
		moved, err := c.controller.ChangeStatus(ctx, store.StatusError, store.StatusQueued)
		if err != nil {
			return err
		}

		logger.Infof(ctx, "Requeued %d failed items", moved)

		return nil
	})
}

// ExecuteAuthTokenCommand persists the credential into the configuration file.
func ExecuteAuthTokenCommand(ctx context.Context, cfg *config.Config, token string) {
	cfg.AuthToken = strings.TrimSpace(token)
	if cfg.AuthToken == "" {
		logger.Fatalf(ctx, "Token cannot be empty")
	}

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
	}

	logger.Infof(ctx, "Token saved")
}

// sweepStaging removes staging leftovers of tracks no longer active in the
// queue. Failures are logged and do not block the run.
func sweepStaging(ctx context.Context, c *components) {
	activeTrackIDs, err := c.store.ActiveStagingTrackIDs(ctx)
	if err != nil {
		logger.Warnf(ctx, "Failed to list active tracks for the staging sweep: %v", err)

		return
	}

	if _, err = c.staging.SweepOrphans(ctx, activeTrackIDs); err != nil {
		logger.Warnf(ctx, "Failed to sweep staging directory: %v", err)
	}
}

// printSummary reports the end-of-run queue and catalog state.
func printSummary(ctx context.Context, c *components) {
	stats, err := c.controller.GetStats(ctx)
	if err != nil {
		logger.Warnf(ctx, "Failed to collect final statistics: %v", err)

		return
	}

	if failed := stats.Counts[store.StatusError]; failed > 0 {
		logger.Warnf(ctx, "Failed downloads: %d (run 'requeue' to retry them)", failed)
	}

	logger.Infof(ctx, "Library:          %d tracks, %s",
		stats.Finished.Count, humanize.IBytes(uint64(stats.Finished.TotalSizeMiB*bytesPerMiB)))
}

// expandReferences replaces references that point at existing text files with
// the unique lines of those files.
func expandReferences(refs []string) ([]string, error) {
	expanded := make([]string, 0, len(refs))

	for _, ref := range refs {
		if !strings.HasSuffix(ref, ".txt") {
			expanded = append(expanded, ref)

			continue
		}

		exists, err := utils.IsFileExist(ref)
		if err != nil {
			return nil, err
		}

		if !exists {
			expanded = append(expanded, ref)

			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(ref)
		if err != nil {
			return nil, err
		}

		expanded = append(expanded, lines...)
	}

	return expanded, nil
}

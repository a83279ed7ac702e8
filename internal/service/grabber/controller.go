package grabber

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/oshokin/yamusic-grabber/internal/client/yandex"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/store"
	"github.com/oshokin/yamusic-grabber/internal/utils"
)

// Controller is the queue management surface exposed to the CLI.
type Controller interface {
	// AddTracks resolves track and playlist references and enqueues them.
	AddTracks(ctx context.Context, refs []string, clearPrevious bool) (*store.EnqueueResult, error)
	// PreviewPlaylist resolves a playlist and reports which entries are new.
	PreviewPlaylist(ctx context.Context, playlistRef string) (*PlaylistPreview, error)
	// GetQueue returns queue items oldest first, capped at limit when positive.
	GetQueue(ctx context.Context, limit int64) ([]*store.QueueItem, error)
	// GetStats assembles queue counts, worker flags and catalog totals.
	GetStats(ctx context.Context) (*Stats, error)
	// Clear removes queue rows in the given scope.
	Clear(ctx context.Context, scope store.ClearScope) (int64, error)
	// RemoveSelected removes the queue rows with the given IDs.
	RemoveSelected(ctx context.Context, ids []int64) (int64, error)
	// ChangeStatus moves every row in the from status to the to status.
	ChangeStatus(ctx context.Context, from, to string) (int64, error)
	// Sweep removes orphaned staging files and catalog rows whose file is gone.
	Sweep(ctx context.Context) (*SweepReport, error)
	// Run starts the worker and blocks until the queue drains.
	Run(ctx context.Context) error
	// Worker exposes the queue worker for lifecycle control.
	Worker() Worker
}

// ControllerImpl implements the Controller interface.
type ControllerImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client talks to the music service.
	client yandex.Client
	// store is the download catalog.
	store store.Store
	// worker drains the queue.
	worker Worker
	// staging owns intermediate files.
	staging *StagingManager
}

// PlaylistPreview reports which playlist entries would be enqueued.
type PlaylistPreview struct {
	// Title is the playlist display name.
	Title string
	// Entries holds one row per playlist track.
	Entries []*PreviewEntry
}

// PreviewEntry is one playlist track with its dedup verdict.
type PreviewEntry struct {
	// TrackID is the service-side track identifier.
	TrackID string
	// Title is the track title.
	Title string
	// Artist is the display artist.
	Artist string
	// New reports whether the entry would be enqueued.
	New bool
	// Reason names the dedup rule that excluded the entry, empty for new ones.
	Reason string
}

// Stats aggregates the queue and catalog state for the status command.
type Stats struct {
	// Counts is the number of queue items per status.
	Counts map[string]int64
	// Running reports whether the worker loop is active.
	Running bool
	// Paused reports whether consumption is suspended.
	Paused bool
	// CurrentTrackID is the track being processed, empty when idle.
	CurrentTrackID string
	// Finished aggregates the finished-track catalog.
	Finished *store.FinishedTotals
}

// SweepReport summarizes one sweep pass.
type SweepReport struct {
	// StagingRemoved is the number of orphaned staging files deleted.
	StagingRemoved int64
	// Checked is the number of catalog rows examined.
	Checked int64
	// Missing is the number of catalog rows whose file is gone.
	Missing int64
	// Deleted is the number of catalog rows removed.
	Deleted int64
}

// Dedup reasons shown in playlist previews.
const (
	reasonAlreadyQueued     = "already queued"
	reasonAlreadyDownloaded = "already downloaded"
)

// Track reference patterns. References are either bare numeric IDs or track
// page URLs.
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var (
	bareTrackIDPattern = regexp.MustCompile(`^\d+$`)
	trackURLPattern    = regexp.MustCompile(`track/(?P<id>\d+)`)
)

// NewController creates a new Controller instance.
func NewController(
	cfg *config.Config,
	client yandex.Client,
	s store.Store,
	worker Worker,
	staging *StagingManager,
) Controller {
	return &ControllerImpl{
		cfg:     cfg,
		client:  client,
		store:   s,
		worker:  worker,
		staging: staging,
	}
}

// AddTracks resolves track and playlist references and enqueues them.
// References can be bare track IDs, track page URLs or playlist references.
func (c *ControllerImpl) AddTracks(
	ctx context.Context,
	refs []string,
	clearPrevious bool,
) (*store.EnqueueResult, error) {
	var cleared int64

	if clearPrevious {
		removed, err := c.store.ClearQueue(ctx, store.ClearScopeAll)
		if err != nil {
			return nil, err
		}

		cleared = removed

		logger.Infof(ctx, "Cleared %d items from the queue", removed)
	}

	var (
		trackIDs []string
		items    []*store.QueueItem
	)

	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		if trackID, ok := parseTrackReference(ref); ok {
			trackIDs = append(trackIDs, trackID)

			continue
		}

		playlistItems, err := c.resolvePlaylistItems(ctx, ref)
		if err != nil {
			return nil, err
		}

		items = append(items, playlistItems...)
	}

	trackItems, err := c.resolveTrackItems(ctx, trackIDs)
	if err != nil {
		return nil, err
	}

	items = append(items, trackItems...)

	if len(items) == 0 {
		return nil, ErrNothingToAdd
	}

	result, err := c.store.EnqueueTracks(ctx, items)
	if err != nil {
		return nil, err
	}

	result.Cleared = cleared

	logger.Infof(ctx, "Added %d tracks to the queue (%d skipped as duplicates)",
		result.Added, result.Skipped())

	return result, nil
}

// resolveTrackItems fetches metadata for bare track references.
func (c *ControllerImpl) resolveTrackItems(ctx context.Context, trackIDs []string) ([]*store.QueueItem, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	tracks, err := c.client.GetTracksMetadata(ctx, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tracks: %w", err)
	}

	items := make([]*store.QueueItem, 0, len(trackIDs))

	for _, trackID := range trackIDs {
		track, ok := tracks[trackID]
		if !ok || track == nil {
			return nil, fmt.Errorf("%w: %s", ErrTrackMetadataMissing, trackID)
		}

		//nolint:exhaustruct // Queue bookkeeping fields are filled by the store.
		items = append(items, &store.QueueItem{
			TrackID: trackID,
			Title:   track.Title,
			Artist:  track.ArtistNames(),
			Album:   track.AlbumTitle(),
			Quality: c.cfg.Quality,
		})
	}

	return items, nil
}

// resolvePlaylistItems previews a playlist and returns queue items for the new
// entries only.
func (c *ControllerImpl) resolvePlaylistItems(ctx context.Context, playlistRef string) ([]*store.QueueItem, error) {
	playlist, err := c.client.GetPlaylist(ctx, playlistRef)
	if err != nil {
		return nil, err
	}

	preview, err := c.previewEntries(ctx, playlist)
	if err != nil {
		return nil, err
	}

	playlistID := playlist.Key()

	var items []*store.QueueItem

	for _, entry := range preview.Entries {
		if !entry.New {
			logger.Debugf(ctx, "Skipping '%s - %s': %s", entry.Artist, entry.Title, entry.Reason)

			continue
		}

		//nolint:exhaustruct // Queue bookkeeping fields are filled by the store.
		items = append(items, &store.QueueItem{
			TrackID:       entry.TrackID,
			Title:         entry.Title,
			Artist:        entry.Artist,
			PlaylistID:    playlistID,
			PlaylistTitle: playlist.Title,
			Quality:       c.cfg.Quality,
		})
	}

	return items, nil
}

// PreviewPlaylist resolves a playlist and reports which entries are new.
func (c *ControllerImpl) PreviewPlaylist(ctx context.Context, playlistRef string) (*PlaylistPreview, error) {
	playlist, err := c.client.GetPlaylist(ctx, playlistRef)
	if err != nil {
		return nil, err
	}

	return c.previewEntries(ctx, playlist)
}

// previewEntries applies the dedup rules to every playlist entry.
// An entry is excluded when the queue already holds its (track, playlist)
// pair, or when the catalog holds that pair or the same (title, artist) within
// the playlist.
func (c *ControllerImpl) previewEntries(ctx context.Context, playlist *yandex.Playlist) (*PlaylistPreview, error) {
	lookup, err := c.store.FinishedLookup(ctx)
	if err != nil {
		return nil, err
	}

	queueItems, err := c.store.ListQueue(ctx, 0)
	if err != nil {
		return nil, err
	}

	playlistID := playlist.Key()
	queuedKeys := make(map[string]struct{}, len(queueItems))

	for _, item := range queueItems {
		// Completed and errored rows never block: the former are handled by
		// the catalog check, the latter can always be retried.
		if item.Status != store.StatusCompleted && item.Status != store.StatusError {
			queuedKeys[store.TrackKey(item.TrackID, item.PlaylistID)] = struct{}{}
		}
	}

	preview := &PlaylistPreview{
		Title:   playlist.Title,
		Entries: make([]*PreviewEntry, 0, len(playlist.Tracks)),
	}

	for _, playlistEntry := range playlist.Tracks {
		track := playlistEntry.Metadata()
		if track == nil {
			continue
		}

		entry := &PreviewEntry{
			TrackID: track.ID.String(),
			Title:   track.Title,
			Artist:  track.ArtistNames(),
			New:     true,
		}

		switch {
		case hasKey(queuedKeys, store.TrackKey(entry.TrackID, playlistID)):
			entry.New, entry.Reason = false, reasonAlreadyQueued
		case lookup.HasTrack(entry.TrackID, playlistID):
			entry.New, entry.Reason = false, reasonAlreadyDownloaded
		case lookup.HasTitleArtist(entry.Title, entry.Artist, playlistID):
			entry.New, entry.Reason = false, reasonAlreadyDownloaded
		}

		preview.Entries = append(preview.Entries, entry)
	}

	return preview, nil
}

// GetQueue returns queue items oldest first, capped at limit when positive.
func (c *ControllerImpl) GetQueue(ctx context.Context, limit int64) ([]*store.QueueItem, error) {
	return c.store.ListQueue(ctx, limit)
}

// GetStats assembles queue counts, worker flags and catalog totals.
func (c *ControllerImpl) GetStats(ctx context.Context) (*Stats, error) {
	counts, err := c.store.QueueStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	finished, err := c.store.FinishedTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Counts:         counts,
		Running:        c.worker.IsRunning(),
		Paused:         c.worker.IsPaused(),
		CurrentTrackID: c.worker.CurrentTrackID(),
		Finished:       finished,
	}, nil
}

// Clear removes queue rows in the given scope.
func (c *ControllerImpl) Clear(ctx context.Context, scope store.ClearScope) (int64, error) {
	removed, err := c.store.ClearQueue(ctx, scope)
	if err != nil {
		return 0, err
	}

	logger.Infof(ctx, "Removed %d items from the queue", removed)

	return removed, nil
}

// RemoveSelected removes the queue rows with the given IDs.
func (c *ControllerImpl) RemoveSelected(ctx context.Context, ids []int64) (int64, error) {
	return c.store.RemoveQueueItems(ctx, ids)
}

// ChangeStatus moves every row in the from status to the to status.
func (c *ControllerImpl) ChangeStatus(ctx context.Context, from, to string) (int64, error) {
	return c.store.ChangeQueueStatus(ctx, from, to)
}

// Sweep removes orphaned staging files and catalog rows whose published file
// no longer exists on disk.
func (c *ControllerImpl) Sweep(ctx context.Context) (*SweepReport, error) {
	activeTrackIDs, err := c.store.ActiveStagingTrackIDs(ctx)
	if err != nil {
		return nil, err
	}

	stagingRemoved, err := c.staging.SweepOrphans(ctx, activeTrackIDs)
	if err != nil {
		return nil, err
	}

	tracks, err := c.store.ListFinishedTracks(ctx)
	if err != nil {
		return nil, err
	}

	report := &SweepReport{
		StagingRemoved: stagingRemoved,
		Checked:        int64(len(tracks)),
	}

	var missingIDs []int64

	for _, track := range tracks {
		exists, statErr := utils.IsFileExist(track.FilePath)
		if statErr != nil {
			logger.Warnf(ctx, "Failed to check '%s': %v", track.FilePath, statErr)

			continue
		}

		if exists {
			continue
		}

		logger.Debugf(ctx, "Catalog row %d points at missing file: %s", track.ID, track.FilePath)

		missingIDs = append(missingIDs, track.ID)
	}

	report.Missing = int64(len(missingIDs))

	report.Deleted, err = c.store.DeleteFinishedTracks(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Sweep removed %d staging files and %d stale catalog rows",
		report.StagingRemoved, report.Deleted)

	return report, nil
}

// Run starts the worker and blocks until the queue drains.
func (c *ControllerImpl) Run(ctx context.Context) error {
	if err := c.worker.Start(ctx); err != nil {
		return err
	}

	c.worker.Wait()

	return nil
}

// Worker exposes the queue worker for lifecycle control.
func (c *ControllerImpl) Worker() Worker {
	return c.worker
}

// parseTrackReference extracts a track ID from a bare ID or a track page URL.
func parseTrackReference(ref string) (string, bool) {
	if bareTrackIDPattern.MatchString(ref) {
		return ref, true
	}

	if id := utils.ExtractNamedGroup(trackURLPattern, "id", ref); id != "" {
		return id, true
	}

	return "", false
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]

	return ok
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oshokin/yamusic-grabber/internal/logger"
)

// validStatuses guards status transitions coming from user input.
//
//nolint:gochecknoglobals // This is an immutable lookup table used as a constant.
var validStatuses = map[string]struct{}{
	StatusPending:     {},
	StatusQueued:      {},
	StatusDownloading: {},
	StatusCompleted:   {},
	StatusError:       {},
}

const queueColumns = `id, track_id, title, artist, album, playlist_id, playlist_title,
	quality, status, progress, error, created_at, updated_at`

// EnqueueTracks inserts the given items inside one transaction.
// An item is skipped when an active queue row with the same (track, playlist)
// pair exists, or when the finished-track catalog already holds that pair.
// Completed and errored rows do not block: a failed download stays visible in
// the queue but can always be enqueued again.
func (s *StoreImpl) EnqueueTracks(ctx context.Context, items []*QueueItem) (*EnqueueResult, error) {
	if len(items) == 0 {
		return nil, ErrNothingToEnqueue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	var (
		result EnqueueResult
		now    = time.Now().Unix()
	)

	for _, item := range items {
		var exists int64

		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM download_queue
			 WHERE track_id = ? AND playlist_id = ? AND status NOT IN (?, ?)`,
			item.TrackID, item.PlaylistID, StatusCompleted, StatusError).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check queue for duplicates: %w", err)
		}

		if exists > 0 {
			result.AlreadyQueued++

			continue
		}

		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM downloaded_tracks WHERE track_id = ? AND playlist_id = ?",
			item.TrackID, item.PlaylistID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check catalog for duplicates: %w", err)
		}

		if exists > 0 {
			result.AlreadyDownloaded++

			continue
		}

		status := item.Status
		if status == "" {
			status = StatusQueued
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO download_queue
			 (track_id, title, artist, album, playlist_id, playlist_title, quality,
			  status, progress, error, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, '', ?, ?)`,
			item.TrackID, item.Title, item.Artist, item.Album,
			item.PlaylistID, item.PlaylistTitle, item.Quality, status, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert queue item: %w", err)
		}

		result.Added++
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit enqueue: %w", err)
	}

	logger.Debugf(ctx, "Enqueued %d items (%d already queued, %d already downloaded)",
		result.Added, result.AlreadyQueued, result.AlreadyDownloaded)

	return &result, nil
}

// NextQueued returns the oldest queued item, or nil when the queue is drained.
func (s *StoreImpl) NextQueued(ctx context.Context) (*QueueItem, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM download_queue
			WHERE status = ? ORDER BY created_at, id LIMIT 1`, queueColumns),
		StatusQueued)

	item, err := scanQueueItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return item, err
}

// SetItemStatus updates the status, progress and error message of one item.
func (s *StoreImpl) SetItemStatus(
	ctx context.Context,
	id int64,
	status string,
	progress int64,
	errorMessage string,
) error {
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownStatus, status)
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE download_queue SET status = ?, progress = ?, error = ?, updated_at = ? WHERE id = ?",
		status, progress, errorMessage, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}

	return nil
}

// SetItemProgress updates the progress of one item.
func (s *StoreImpl) SetItemProgress(ctx context.Context, id int64, progress int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE download_queue SET progress = ?, updated_at = ? WHERE id = ?",
		progress, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update item progress: %w", err)
	}

	return nil
}

// ResetStaleDownloading returns items stuck in the downloading status back to
// queued with zero progress. Stale rows appear after a crash mid-download.
func (s *StoreImpl) ResetStaleDownloading(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE download_queue SET status = ?, progress = 0, error = '', updated_at = ? WHERE status = ?",
		StatusQueued, time.Now().Unix(), StatusDownloading)
	if err != nil {
		return 0, fmt.Errorf("failed to reset stale items: %w", err)
	}

	return result.RowsAffected()
}

// RequeuePending moves pending items back to queued.
func (s *StoreImpl) RequeuePending(ctx context.Context) (int64, error) {
	return s.ChangeQueueStatus(ctx, StatusPending, StatusQueued)
}

// QueueStatusCounts returns the number of items per status.
// Statuses with no items are absent from the map.
func (s *StoreImpl) QueueStatusCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM download_queue GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count queue items: %w", err)
	}

	defer rows.Close()

	counts := make(map[string]int64)

	for rows.Next() {
		var (
			status string
			count  int64
		)

		if err = rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}

		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}

	return counts, nil
}

// ListQueue returns queue items ordered oldest first, capped at limit when positive.
func (s *StoreImpl) ListQueue(ctx context.Context, limit int64) ([]*QueueItem, error) {
	query := fmt.Sprintf("SELECT %s FROM download_queue ORDER BY created_at, id", queueColumns)

	var args []any

	if limit > 0 {
		query += " LIMIT ?"

		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}

	defer rows.Close()

	var items []*QueueItem

	for rows.Next() {
		item, scanErr := scanQueueItem(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue: %w", err)
	}

	return items, nil
}

// ActiveStagingTrackIDs returns the track IDs of rows that may own staging files,
// i.e. everything that has not completed.
func (s *StoreImpl) ActiveStagingTrackIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT track_id FROM download_queue WHERE status != ?", StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list active track IDs: %w", err)
	}

	defer rows.Close()

	ids := make(map[string]struct{})

	for rows.Next() {
		var trackID string

		if err = rows.Scan(&trackID); err != nil {
			return nil, fmt.Errorf("failed to scan track ID: %w", err)
		}

		ids[trackID] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate track IDs: %w", err)
	}

	return ids, nil
}

// ClearQueue removes queue rows in the given scope.
func (s *StoreImpl) ClearQueue(ctx context.Context, scope ClearScope) (int64, error) {
	var (
		result sql.Result
		err    error
	)

	switch scope {
	case ClearScopeCompleted:
		result, err = s.db.ExecContext(ctx,
			"DELETE FROM download_queue WHERE status = ?", StatusCompleted)
	case ClearScopePending:
		result, err = s.db.ExecContext(ctx,
			"DELETE FROM download_queue WHERE status != ?", StatusCompleted)
	case ClearScopeAll:
		result, err = s.db.ExecContext(ctx, "DELETE FROM download_queue")
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownClearScope, scope)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to clear queue: %w", err)
	}

	return result.RowsAffected()
}

// RemoveQueueItems removes the rows with the given IDs.
func (s *StoreImpl) RemoveQueueItems(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders, args := idPlaceholders(ids)

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM download_queue WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to remove queue items: %w", err)
	}

	return result.RowsAffected()
}

// ChangeQueueStatus moves every row in the from status to the to status.
// Rows moved out of the error status have their error message cleared.
func (s *StoreImpl) ChangeQueueStatus(ctx context.Context, from, to string) (int64, error) {
	if _, ok := validStatuses[from]; !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownStatus, from)
	}

	if _, ok := validStatuses[to]; !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownStatus, to)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE download_queue SET status = ?, error = '', updated_at = ? WHERE status = ?",
		to, time.Now().Unix(), from)
	if err != nil {
		return 0, fmt.Errorf("failed to change queue status: %w", err)
	}

	return result.RowsAffected()
}

// scanner abstracts *sql.Row and *sql.Rows for the shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// scanQueueItem scans one row selected with queueColumns.
func scanQueueItem(row scanner) (*QueueItem, error) {
	var (
		item      QueueItem
		createdAt int64
		updatedAt int64
	)

	err := row.Scan(&item.ID, &item.TrackID, &item.Title, &item.Artist, &item.Album,
		&item.PlaylistID, &item.PlaylistTitle, &item.Quality, &item.Status,
		&item.Progress, &item.Error, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to scan queue item: %w", err)
	}

	item.CreatedAt = time.Unix(createdAt, 0)
	item.UpdatedAt = time.Unix(updatedAt, 0)

	return &item, nil
}

// idPlaceholders builds a "?, ?, ?" list and its arguments for an IN clause.
func idPlaceholders(ids []int64) (string, []any) {
	args := make([]any, 0, len(ids))

	for _, id := range ids {
		args = append(args, id)
	}

	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

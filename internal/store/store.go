package store

//go:generate $MOCKGEN -source=store.go -destination=mocks/store_mock.go

import (
	"context"
	"database/sql"
	"fmt"

	// Pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/oshokin/yamusic-grabber/internal/logger"
)

// Store defines the interface for the download catalog.
type Store interface {
	// Close releases the underlying database handle.
	Close() error

	// EnqueueTracks inserts the given items, skipping duplicates against
	// active queue rows and the finished-track catalog.
	EnqueueTracks(ctx context.Context, items []*QueueItem) (*EnqueueResult, error)
	// NextQueued returns the oldest queued item, or nil when the queue is drained.
	NextQueued(ctx context.Context) (*QueueItem, error)
	// SetItemStatus updates the status, progress and error message of one item.
	SetItemStatus(ctx context.Context, id int64, status string, progress int64, errorMessage string) error
	// SetItemProgress updates the progress of one item.
	SetItemProgress(ctx context.Context, id int64, progress int64) error
	// ResetStaleDownloading returns items stuck in the downloading status back to queued.
	ResetStaleDownloading(ctx context.Context) (int64, error)
	// RequeuePending moves pending items back to queued.
	RequeuePending(ctx context.Context) (int64, error)
	// QueueStatusCounts returns the number of items per status.
	QueueStatusCounts(ctx context.Context) (map[string]int64, error)
	// ListQueue returns queue items ordered oldest first, capped at limit when positive.
	ListQueue(ctx context.Context, limit int64) ([]*QueueItem, error)
	// ActiveStagingTrackIDs returns the track IDs of rows that may own staging files.
	ActiveStagingTrackIDs(ctx context.Context) (map[string]struct{}, error)
	// ClearQueue removes queue rows in the given scope.
	ClearQueue(ctx context.Context, scope ClearScope) (int64, error)
	// RemoveQueueItems removes the rows with the given IDs.
	RemoveQueueItems(ctx context.Context, ids []int64) (int64, error)
	// ChangeQueueStatus moves every row in the from status to the to status.
	ChangeQueueStatus(ctx context.Context, from, to string) (int64, error)

	// SaveFinishedTrack upserts a catalog row keyed by (track, playlist).
	SaveFinishedTrack(ctx context.Context, track *FinishedTrack) error
	// FinishedTotals aggregates the catalog for statistics.
	FinishedTotals(ctx context.Context) (*FinishedTotals, error)
	// FinishedLookup loads the catalog dedup keys.
	FinishedLookup(ctx context.Context) (*FinishedLookup, error)
	// ListFinishedTracks returns catalog rows without cover art bytes.
	ListFinishedTracks(ctx context.Context) ([]*FinishedTrack, error)
	// DeleteFinishedTracks removes the catalog rows with the given IDs.
	DeleteFinishedTracks(ctx context.Context, ids []int64) (int64, error)

	// GetSetting reads a settings value; the boolean reports whether the key exists.
	GetSetting(ctx context.Context, key string) (string, bool, error)
	// SetSetting upserts a settings value.
	SetSetting(ctx context.Context, key, value string) error
}

// StoreImpl implements the Store interface on SQLite.
//
//nolint:revive // The name is prefixed with the package name intentionally.
type StoreImpl struct {
	db *sql.DB
}

// schemaVersion is the current value of PRAGMA user_version.
const schemaVersion = 1

// busyTimeoutMS is how long a statement waits on a locked database.
const busyTimeoutMS = 5000

const schemaStatements = `
CREATE TABLE IF NOT EXISTS download_queue (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	track_id       TEXT NOT NULL,
	title          TEXT NOT NULL DEFAULT '',
	artist         TEXT NOT NULL DEFAULT '',
	album          TEXT NOT NULL DEFAULT '',
	playlist_id    TEXT NOT NULL DEFAULT '',
	playlist_title TEXT NOT NULL DEFAULT '',
	quality        TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT 'queued',
	progress       INTEGER NOT NULL DEFAULT 0,
	error          TEXT NOT NULL DEFAULT '',
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_download_queue_status ON download_queue (status);
CREATE INDEX IF NOT EXISTS idx_download_queue_track ON download_queue (track_id, playlist_id);

CREATE TABLE IF NOT EXISTS downloaded_tracks (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	track_id         TEXT NOT NULL,
	title            TEXT NOT NULL DEFAULT '',
	version          TEXT NOT NULL DEFAULT '',
	artist           TEXT NOT NULL DEFAULT '',
	album            TEXT NOT NULL DEFAULT '',
	playlist_id      TEXT NOT NULL DEFAULT '',
	playlist_title   TEXT NOT NULL DEFAULT '',
	file_path        TEXT NOT NULL,
	file_size_mib    REAL NOT NULL DEFAULT 0,
	quality          TEXT NOT NULL DEFAULT '',
	format           TEXT NOT NULL DEFAULT '',
	year             INTEGER NOT NULL DEFAULT 0,
	genre            TEXT NOT NULL DEFAULT '',
	label            TEXT NOT NULL DEFAULT '',
	isrc             TEXT NOT NULL DEFAULT '',
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	cover            BLOB,
	downloaded_at    INTEGER NOT NULL,
	UNIQUE (track_id, playlist_id)
);
CREATE INDEX IF NOT EXISTS idx_downloaded_tracks_title ON downloaded_tracks (title, artist, playlist_id);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Open opens (creating if necessary) the catalog database at path and applies
// pending schema migrations.
func Open(ctx context.Context, path string) (Store, error) {
	if path == "" {
		return nil, ErrEmptyDatabasePath
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path, busyTimeoutMS)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The database is accessed by a single process; one connection avoids
	// writer contention entirely.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(ctx, db); err != nil {
		db.Close()

		return nil, err
	}

	logger.Debugf(ctx, "Catalog database is ready at %s", path)

	return &StoreImpl{db: db}, nil
}

// migrate brings the schema up to schemaVersion using PRAGMA user_version.
func migrate(ctx context.Context, db *sql.DB) error {
	var currentVersion int64
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if currentVersion >= schemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}

	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	if _, err = tx.ExecContext(ctx, schemaStatements); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to bump schema version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (s *StoreImpl) Close() error {
	return s.db.Close()
}

package store

import (
	"strings"
	"time"
)

// Queue item statuses.
const (
	// StatusPending marks items parked by the user; the worker skips them.
	StatusPending = "pending"
	// StatusQueued marks items waiting to be picked up by the worker.
	StatusQueued = "queued"
	// StatusDownloading marks the single item the worker is processing.
	StatusDownloading = "downloading"
	// StatusCompleted marks items whose track was published successfully.
	StatusCompleted = "completed"
	// StatusError marks items that failed; the error column holds the reason.
	StatusError = "error"
)

// ClearScope selects which queue rows a clear operation removes.
type ClearScope string

// Clear scopes.
const (
	// ClearScopeCompleted removes completed rows only.
	ClearScopeCompleted ClearScope = "completed"
	// ClearScopePending removes rows that have not finished yet.
	ClearScopePending ClearScope = "pending"
	// ClearScopeAll removes every row.
	ClearScopeAll ClearScope = "all"
)

// Well-known settings keys.
const (
	// SettingDownloadPath overrides the configured output directory.
	SettingDownloadPath = "download_path"
	// SettingFileTemplate overrides the track filename template.
	SettingFileTemplate = "file_template"
	// SettingFolderStructure overrides the folder structure template.
	SettingFolderStructure = "folder_structure"
	// SettingQuality overrides the configured quality tier.
	SettingQuality = "quality"
	// SettingDownloadsPaused persists the paused flag across restarts.
	SettingDownloadsPaused = "downloads_paused"
)

// QueueItem is one row of the download queue.
type QueueItem struct {
	// ID is the row identifier.
	ID int64
	// TrackID is the service-side track identifier.
	TrackID string
	// Title is the track title captured at enqueue time.
	Title string
	// Artist is the display artist captured at enqueue time.
	Artist string
	// Album is the album title captured at enqueue time.
	Album string
	// PlaylistID identifies the playlist the item came from, empty for single tracks.
	PlaylistID string
	// PlaylistTitle is the playlist display name, empty for single tracks.
	PlaylistTitle string
	// Quality is the requested quality tier.
	Quality string
	// Status is one of the Status* constants.
	Status string
	// Progress is the download progress in percent.
	Progress int64
	// Error holds the failure reason for items in the error status.
	Error string
	// CreatedAt is when the item was enqueued.
	CreatedAt time.Time
	// UpdatedAt is when the item last changed.
	UpdatedAt time.Time
}

// EnqueueResult reports how an enqueue batch was split.
type EnqueueResult struct {
	// Added is the number of items inserted.
	Added int64
	// AlreadyQueued is the number of items skipped because an active queue row exists.
	AlreadyQueued int64
	// AlreadyDownloaded is the number of items skipped because the track is already in the catalog.
	AlreadyDownloaded int64
	// Cleared is the number of queue rows removed before the batch was enqueued.
	Cleared int64
}

// Skipped returns the total number of items the batch did not insert.
func (r *EnqueueResult) Skipped() int64 {
	return r.AlreadyQueued + r.AlreadyDownloaded
}

// FinishedTrack is one row of the finished-track catalog.
type FinishedTrack struct {
	// ID is the row identifier.
	ID int64
	// TrackID is the service-side track identifier.
	TrackID string
	// Title is the track title.
	Title string
	// Version is the track version qualifier, e.g. "Remastered".
	Version string
	// Artist is the display artist.
	Artist string
	// Album is the album title.
	Album string
	// PlaylistID identifies the playlist the download came from, empty for single tracks.
	PlaylistID string
	// PlaylistTitle is the playlist display name.
	PlaylistTitle string
	// FilePath is the absolute path of the published file.
	FilePath string
	// FileSizeMiB is the published file size in mebibytes.
	FileSizeMiB float64
	// Quality is the human-readable quality string, e.g. "16-bit/48.0kHz".
	Quality string
	// Format is the audio format tag, e.g. "FLAC".
	Format string
	// Year is the album release year, zero when unknown.
	Year int64
	// Genre is the album genre.
	Genre string
	// Label is the record label name.
	Label string
	// ISRC is the international standard recording code, empty when unknown.
	ISRC string
	// DurationSeconds is the track duration.
	DurationSeconds int64
	// Cover holds the embedded cover art bytes, nil when covers are disabled.
	Cover []byte
	// DownloadedAt is when the track was published.
	DownloadedAt time.Time
}

// FinishedTotals aggregates the finished-track catalog for statistics.
type FinishedTotals struct {
	// Count is the number of catalog rows.
	Count int64
	// TotalSizeMiB is the summed file size in mebibytes.
	TotalSizeMiB float64
}

// FinishedLookup holds the dedup keys of the finished-track catalog.
type FinishedLookup struct {
	// ByTrack is keyed by trackID + "\x00" + playlistID.
	ByTrack map[string]struct{}
	// ByTitleArtist is keyed by lowercased title + "\x00" + artist + "\x00" + playlistID.
	ByTitleArtist map[string]struct{}
}

// TrackKey builds the (track, playlist) dedup key.
func TrackKey(trackID, playlistID string) string {
	return trackID + "\x00" + playlistID
}

// TitleArtistKey builds the (title, artist, playlist) dedup key.
// Titles and artists are compared case-insensitively.
func TitleArtistKey(title, artist, playlistID string) string {
	return strings.ToLower(title) + "\x00" + strings.ToLower(artist) + "\x00" + playlistID
}

// HasTrack reports whether the catalog contains the (track, playlist) pair.
func (l *FinishedLookup) HasTrack(trackID, playlistID string) bool {
	_, ok := l.ByTrack[TrackKey(trackID, playlistID)]

	return ok
}

// HasTitleArtist reports whether the catalog contains the (title, artist, playlist) triple.
func (l *FinishedLookup) HasTitleArtist(title, artist, playlistID string) bool {
	_, ok := l.ByTitleArtist[TitleArtistKey(title, artist, playlistID)]

	return ok
}

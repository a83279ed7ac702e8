package store

import (
	"context"
	"fmt"
	"time"
)

// SaveFinishedTrack upserts a catalog row keyed by (track, playlist).
// Re-downloading a track refreshes its metadata, path and size.
func (s *StoreImpl) SaveFinishedTrack(ctx context.Context, track *FinishedTrack) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloaded_tracks
		 (track_id, title, version, artist, album, playlist_id, playlist_title,
		  file_path, file_size_mib, quality, format, year, genre, label, isrc,
		  duration_seconds, cover, downloaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (track_id, playlist_id) DO UPDATE SET
			title = excluded.title,
			version = excluded.version,
			artist = excluded.artist,
			album = excluded.album,
			playlist_title = excluded.playlist_title,
			file_path = excluded.file_path,
			file_size_mib = excluded.file_size_mib,
			quality = excluded.quality,
			format = excluded.format,
			year = excluded.year,
			genre = excluded.genre,
			label = excluded.label,
			isrc = excluded.isrc,
			duration_seconds = excluded.duration_seconds,
			cover = excluded.cover,
			downloaded_at = excluded.downloaded_at`,
		track.TrackID, track.Title, track.Version, track.Artist, track.Album,
		track.PlaylistID, track.PlaylistTitle, track.FilePath, track.FileSizeMiB,
		track.Quality, track.Format, track.Year, track.Genre, track.Label,
		track.ISRC, track.DurationSeconds, track.Cover, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save finished track: %w", err)
	}

	return nil
}

// FinishedTotals aggregates the catalog for statistics.
func (s *StoreImpl) FinishedTotals(ctx context.Context) (*FinishedTotals, error) {
	var totals FinishedTotals

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(file_size_mib), 0) FROM downloaded_tracks").
		Scan(&totals.Count, &totals.TotalSizeMiB)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate finished tracks: %w", err)
	}

	return &totals, nil
}

// FinishedLookup loads the catalog dedup keys.
func (s *StoreImpl) FinishedLookup(ctx context.Context) (*FinishedLookup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT track_id, title, artist, playlist_id FROM downloaded_tracks")
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog keys: %w", err)
	}

	defer rows.Close()

	lookup := &FinishedLookup{
		ByTrack:       make(map[string]struct{}),
		ByTitleArtist: make(map[string]struct{}),
	}

	for rows.Next() {
		var trackID, title, artist, playlistID string

		if err = rows.Scan(&trackID, &title, &artist, &playlistID); err != nil {
			return nil, fmt.Errorf("failed to scan catalog key: %w", err)
		}

		lookup.ByTrack[TrackKey(trackID, playlistID)] = struct{}{}
		lookup.ByTitleArtist[TitleArtistKey(title, artist, playlistID)] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog keys: %w", err)
	}

	return lookup, nil
}

// ListFinishedTracks returns catalog rows ordered by download time, newest
// first. Cover art bytes are not loaded.
func (s *StoreImpl) ListFinishedTracks(ctx context.Context) ([]*FinishedTrack, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, track_id, title, version, artist, album, playlist_id, playlist_title,
			file_path, file_size_mib, quality, format, year, genre, label, isrc,
			duration_seconds, downloaded_at
		 FROM downloaded_tracks ORDER BY downloaded_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished tracks: %w", err)
	}

	defer rows.Close()

	var tracks []*FinishedTrack

	for rows.Next() {
		var (
			track        FinishedTrack
			downloadedAt int64
		)

		err = rows.Scan(&track.ID, &track.TrackID, &track.Title, &track.Version,
			&track.Artist, &track.Album, &track.PlaylistID, &track.PlaylistTitle,
			&track.FilePath, &track.FileSizeMiB, &track.Quality, &track.Format,
			&track.Year, &track.Genre, &track.Label, &track.ISRC,
			&track.DurationSeconds, &downloadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finished track: %w", err)
		}

		track.DownloadedAt = time.Unix(downloadedAt, 0)
		tracks = append(tracks, &track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate finished tracks: %w", err)
	}

	return tracks, nil
}

// DeleteFinishedTracks removes the catalog rows with the given IDs.
func (s *StoreImpl) DeleteFinishedTracks(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders, args := idPlaceholders(ids)

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM downloaded_tracks WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete finished tracks: %w", err)
	}

	return result.RowsAffected()
}

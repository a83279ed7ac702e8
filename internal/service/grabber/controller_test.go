package grabber_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/yamusic-grabber/internal/client/yandex"
	mock_yandex "github.com/oshokin/yamusic-grabber/internal/client/yandex/mocks"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/constants"
	"github.com/oshokin/yamusic-grabber/internal/service/grabber"
	mock_grabber "github.com/oshokin/yamusic-grabber/internal/service/grabber/mocks"
	"github.com/oshokin/yamusic-grabber/internal/store"
)

// controllerTestSetup encapsulates common controller test dependencies.
type controllerTestSetup struct {
	client     *mock_yandex.MockClient
	store      store.Store
	staging    *grabber.StagingManager
	controller grabber.Controller
}

func newControllerSetup(t *testing.T) *controllerTestSetup {
	t.Helper()

	ctrl := gomock.NewController(t)

	s, err := store.Open(t.Context(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	//nolint:exhaustruct // Only the fields the controller reads are relevant.
	cfg := &config.Config{
		Quality:            config.QualityLossless,
		KeepCompletedItems: true,
	}

	client := mock_yandex.NewMockClient(ctrl)
	engine := mock_grabber.NewMockEngine(ctrl)
	worker := grabber.NewWorker(cfg, s, engine)

	staging, err := grabber.NewStagingManager(filepath.Join(t.TempDir(), "staging"))
	require.NoError(t, err)

	return &controllerTestSetup{
		client:     client,
		store:      s,
		staging:    staging,
		controller: grabber.NewController(cfg, client, s, worker, staging),
	}
}

func testTrack(id, title, artist string) *yandex.Track {
	//nolint:exhaustruct // Only identity fields matter here.
	return &yandex.Track{
		ID:      json.Number(id),
		Title:   title,
		Artists: []yandex.Artist{{Name: artist}},
		Albums:  []yandex.Album{{Title: "Album", Year: 2021}}, //nolint:exhaustruct // Only identity fields matter here.
	}
}

// TestController_AddTracks_References verifies bare IDs and track URLs.
func TestController_AddTracks_References(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)

	setup.client.EXPECT().
		GetTracksMetadata(gomock.Any(), []string{"137829428", "42"}).
		Return(map[string]*yandex.Track{
			"137829428": testTrack("137829428", "Daydream", "The Band"),
			"42":        testTrack("42", "Nocturne", "Solo Act"),
		}, nil)

	refs := []string{
		"137829428",
		"https://music.yandex.ru/album/29257706/track/42",
	}

	result, err := setup.controller.AddTracks(t.Context(), refs, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Added)

	items, err := setup.store.ListQueue(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Daydream", items[0].Title)
	assert.Equal(t, "The Band", items[0].Artist)
	assert.Equal(t, config.QualityLossless, items[0].Quality)
}

// TestController_AddTracks_MissingMetadata verifies the unresolved track guard.
func TestController_AddTracks_MissingMetadata(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)

	setup.client.EXPECT().
		GetTracksMetadata(gomock.Any(), []string{"1"}).
		Return(map[string]*yandex.Track{}, nil)

	_, err := setup.controller.AddTracks(t.Context(), []string{"1"}, false)
	require.ErrorIs(t, err, grabber.ErrTrackMetadataMissing)
}

// TestController_AddTracks_Empty verifies that blank references are rejected.
func TestController_AddTracks_Empty(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)

	_, err := setup.controller.AddTracks(t.Context(), []string{"", "  "}, false)
	require.ErrorIs(t, err, grabber.ErrNothingToAdd)
}

// playlistFixture builds a four-entry playlist where entries 1-3 collide with
// existing queue or catalog state and only entry 4 is new.
func playlistFixture() *yandex.Playlist {
	//nolint:exhaustruct // Only identity fields matter here.
	return &yandex.Playlist{
		Kind:  "2441",
		UID:   "103372440",
		Title: "Daily Mix",
		Tracks: []yandex.PlaylistEntry{
			{ID: "1", Track: testTrack("1", "Queued Song", "Artist A")},
			{ID: "2", Track: testTrack("2", "Downloaded Song", "Artist B")},
			{ID: "3", Track: testTrack("3", "Same Song", "Same Artist")},
			{ID: "4", Track: testTrack("4", "Fresh Song", "Artist D")},
		},
	}
}

// seedPlaylistCollisions populates the store so that playlistFixture entries
// 1-3 are duplicates.
func seedPlaylistCollisions(t *testing.T, s store.Store, playlistID string) {
	t.Helper()

	//nolint:exhaustruct // Queue bookkeeping fields are filled by the store.
	_, err := s.EnqueueTracks(t.Context(), []*store.QueueItem{
		{TrackID: "1", Title: "Queued Song", Artist: "Artist A", PlaylistID: playlistID},
	})
	require.NoError(t, err)

	//nolint:exhaustruct // Only identity fields matter here.
	require.NoError(t, s.SaveFinishedTrack(t.Context(), &store.FinishedTrack{
		TrackID:    "2",
		Title:      "Downloaded Song",
		Artist:     "Artist B",
		PlaylistID: playlistID,
		FilePath:   "/music/2.flac",
	}))

	// Same title and artist under a different track ID.
	//nolint:exhaustruct // Only identity fields matter here.
	require.NoError(t, s.SaveFinishedTrack(t.Context(), &store.FinishedTrack{
		TrackID:    "999",
		Title:      "same song",
		Artist:     "same artist",
		PlaylistID: playlistID,
		FilePath:   "/music/999.flac",
	}))
}

// TestController_PreviewPlaylist verifies the dedup verdicts.
func TestController_PreviewPlaylist(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)
	playlist := playlistFixture()
	seedPlaylistCollisions(t, setup.store, playlist.Key())

	setup.client.EXPECT().
		GetPlaylist(gomock.Any(), "103372440:2441").
		Return(playlist, nil)

	preview, err := setup.controller.PreviewPlaylist(t.Context(), "103372440:2441")
	require.NoError(t, err)

	assert.Equal(t, "Daily Mix", preview.Title)
	require.Len(t, preview.Entries, 4)

	expected := []struct {
		trackID string
		isNew   bool
		reason  string
	}{
		{trackID: "1", isNew: false, reason: "already queued"},
		{trackID: "2", isNew: false, reason: "already downloaded"},
		{trackID: "3", isNew: false, reason: "already downloaded"},
		{trackID: "4", isNew: true, reason: ""},
	}

	for i, want := range expected {
		entry := preview.Entries[i]
		assert.Equal(t, want.trackID, entry.TrackID)
		assert.Equal(t, want.isNew, entry.New, entry.TrackID)
		assert.Equal(t, want.reason, entry.Reason, entry.TrackID)
	}
}

// TestController_AddTracks_Playlist verifies that only new playlist entries are
// enqueued.
func TestController_AddTracks_Playlist(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)
	playlist := playlistFixture()
	seedPlaylistCollisions(t, setup.store, playlist.Key())

	ref := "https://music.yandex.ru/users/music-blog/playlists/2441"

	setup.client.EXPECT().
		GetPlaylist(gomock.Any(), ref).
		Return(playlist, nil)

	result, err := setup.controller.AddTracks(t.Context(), []string{ref}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Added)

	items, err := setup.store.ListQueue(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	added := items[1]
	assert.Equal(t, "4", added.TrackID)
	assert.Equal(t, "Daily Mix", added.PlaylistTitle)
	assert.Equal(t, playlist.Key(), added.PlaylistID)
}

// TestController_AddTracks_ClearPrevious verifies that the whole queue,
// completed rows included, is dropped before enqueueing and that the cleared
// count is reported.
func TestController_AddTracks_ClearPrevious(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	setup := newControllerSetup(t)

	//nolint:exhaustruct // Queue bookkeeping fields are filled by the store.
	_, err := setup.store.EnqueueTracks(ctx, []*store.QueueItem{{TrackID: "1"}, {TrackID: "3"}})
	require.NoError(t, err)

	completed, err := setup.store.NextQueued(ctx)
	require.NoError(t, err)
	require.NoError(t, setup.store.SetItemStatus(ctx, completed.ID, store.StatusCompleted, 100, ""))

	setup.client.EXPECT().
		GetTracksMetadata(gomock.Any(), []string{"2"}).
		Return(map[string]*yandex.Track{"2": testTrack("2", "Fresh", "Artist")}, nil)

	result, err := setup.controller.AddTracks(ctx, []string{"2"}, true)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Cleared)
	assert.Equal(t, int64(1), result.Added)

	items, err := setup.store.ListQueue(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].TrackID)
}

// TestController_GetStats verifies stats assembly.
func TestController_GetStats(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)

	//nolint:exhaustruct // Queue bookkeeping fields are filled by the store.
	_, err := setup.store.EnqueueTracks(t.Context(), []*store.QueueItem{{TrackID: "1"}, {TrackID: "2"}})
	require.NoError(t, err)

	stats, err := setup.controller.GetStats(t.Context())
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{store.StatusQueued: 2}, stats.Counts)
	assert.False(t, stats.Running)
	assert.False(t, stats.Paused)
	assert.Empty(t, stats.CurrentTrackID)
	assert.Equal(t, int64(0), stats.Finished.Count)
}

// TestController_Sweep verifies staging cleanup and stale catalog removal.
func TestController_Sweep(t *testing.T) {
	t.Parallel()

	setup := newControllerSetup(t)

	// An orphaned staging file; no queue item references track 555.
	orphan := setup.staging.StagingPath("555", constants.SuffixPartial)
	require.NoError(t, os.WriteFile(orphan, []byte("x"), 0o600))

	// One catalog row with its file on disk, one pointing at nothing.
	existing := filepath.Join(t.TempDir(), "kept.flac")
	require.NoError(t, os.WriteFile(existing, []byte("audio"), 0o600))

	//nolint:exhaustruct // Only identity fields matter here.
	require.NoError(t, setup.store.SaveFinishedTrack(t.Context(), &store.FinishedTrack{
		TrackID:  "1",
		FilePath: existing,
	}))
	//nolint:exhaustruct // Only identity fields matter here.
	require.NoError(t, setup.store.SaveFinishedTrack(t.Context(), &store.FinishedTrack{
		TrackID:  "2",
		FilePath: filepath.Join(t.TempDir(), "gone.flac"),
	}))

	report, err := setup.controller.Sweep(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.StagingRemoved)
	assert.Equal(t, int64(2), report.Checked)
	assert.Equal(t, int64(1), report.Missing)
	assert.Equal(t, int64(1), report.Deleted)

	totals, err := setup.store.FinishedTotals(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Count)
}

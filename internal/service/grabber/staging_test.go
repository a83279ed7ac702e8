package grabber

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/yamusic-grabber/internal/constants"
)

// TestStagingPath verifies staging file naming.
func TestStagingPath(t *testing.T) {
	t.Parallel()

	manager, err := NewStagingManager(t.TempDir())
	require.NoError(t, err)

	first := manager.StagingPath("137829428", constants.SuffixPartial)
	second := manager.StagingPath("137829428", constants.SuffixPartial)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(first), "137829428_"))
	assert.True(t, strings.HasSuffix(first, constants.SuffixPartial))
}

// TestSweepOrphans verifies that only inactive intermediate files are removed.
func TestSweepOrphans(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manager, err := NewStagingManager(dir)
	require.NoError(t, err)

	files := map[string]bool{
		// name -> should survive
		"100_aaaa.part":          true,  // active track
		"200_bbbb.encrypted":     false, // orphan
		"200_cccc.decrypted.mp4": false, // orphan
		"300_dddd.remuxed.flac":  false, // orphan
		"notes.txt":              true,  // not a staging file
	}

	for name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	removed, err := manager.SweepOrphans(t.Context(), map[string]struct{}{"100": {}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	for name, survives := range files {
		_, statErr := os.Stat(filepath.Join(dir, name))
		if survives {
			assert.NoError(t, statErr, name)
		} else {
			assert.True(t, os.IsNotExist(statErr), name)
		}
	}
}

// TestPublish verifies the atomic move, including parent directory creation.
func TestPublish(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manager, err := NewStagingManager(filepath.Join(dir, "staging"))
	require.NoError(t, err)

	src := manager.StagingPath("1", constants.SuffixPartial)
	require.NoError(t, os.WriteFile(src, []byte("audio"), 0o600))

	dst := filepath.Join(dir, "music", "Artist", "Album", "track.flac")
	require.NoError(t, manager.Publish(t.Context(), src, dst))

	content, err := os.ReadFile(dst) //nolint:gosec // Test-owned path.
	require.NoError(t, err)
	assert.Equal(t, "audio", string(content))

	// The staging file is gone and no partial sibling was left behind.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(dst + constants.SuffixPartial)
	assert.True(t, os.IsNotExist(err))
}

// TestPublish_OverwritesExisting verifies that a re-download replaces the file.
func TestPublish_OverwritesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manager, err := NewStagingManager(filepath.Join(dir, "staging"))
	require.NoError(t, err)

	dst := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o600))

	src := manager.StagingPath("1", constants.SuffixPartial)
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o600))

	require.NoError(t, manager.Publish(t.Context(), src, dst))

	content, err := os.ReadFile(dst) //nolint:gosec // Test-owned path.
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpandReferences verifies that text file references are replaced by
// their unique lines while everything else passes through.
func TestExpandReferences(t *testing.T) {
	t.Parallel()

	listPath := filepath.Join(t.TempDir(), "tracks.txt")
	content := "137829428\n\nhttps://music.yandex.ru/album/1/track/42\n137829428\n"
	require.NoError(t, os.WriteFile(listPath, []byte(content), 0o600))

	refs, err := expandReferences([]string{"7", listPath, "owner:kind"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"7",
		"137829428",
		"https://music.yandex.ru/album/1/track/42",
		"owner:kind",
	}, refs)
}

// TestExpandReferences_MissingFile verifies that a .txt reference that is not
// a file on disk is kept as-is.
func TestExpandReferences_MissingFile(t *testing.T) {
	t.Parallel()

	refs, err := expandReferences([]string{"does-not-exist.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"does-not-exist.txt"}, refs)
}

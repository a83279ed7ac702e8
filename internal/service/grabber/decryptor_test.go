package grabber

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecryptFile verifies AES-128-CTR decryption against a reference vector
// produced with the service's zero-counter scheme.
func TestDecryptFile(t *testing.T) {
	t.Parallel()

	const (
		keyHex        = "00112233445566778899aabbccddeeff"
		plaintext     = "The quick brown fox jumps over the lazy dog, twice around the block."
		ciphertextHex = "a98c9e8e3b7c894384d740e4f0f4ed0be2bbb1e0e13a255812c3c6b0a629e4ad" +
			"759c075b2469c6f4fb2c0cfb1f4625ecb98a6f96935233c8bfeb686a2b5231eb698b0e99"
	)

	ciphertext, err := hex.DecodeString(ciphertextHex)
	require.NoError(t, err)

	dir := t.TempDir()
	src := filepath.Join(dir, "payload.encrypted")
	dst := filepath.Join(dir, "payload.decrypted.mp4")

	require.NoError(t, os.WriteFile(src, ciphertext, 0o600))

	decryptor := NewDecryptor()
	require.NoError(t, decryptor.DecryptFile(t.Context(), keyHex, src, dst))

	decrypted, err := os.ReadFile(dst) //nolint:gosec // Test-owned path.
	require.NoError(t, err)
	assert.Equal(t, plaintext, string(decrypted))
}

// TestDecryptFile_RoundTrip verifies that decrypting twice restores the
// original bytes, CTR being its own inverse.
func TestDecryptFile_RoundTrip(t *testing.T) {
	t.Parallel()

	const keyHex = "ffeeddccbbaa99887766554433221100"

	original := []byte("some raw audio payload that is long enough to span a few blocks of AES")

	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	mid := filepath.Join(dir, "b")
	dst := filepath.Join(dir, "c")

	require.NoError(t, os.WriteFile(src, original, 0o600))

	decryptor := NewDecryptor()
	require.NoError(t, decryptor.DecryptFile(t.Context(), keyHex, src, mid))
	require.NoError(t, decryptor.DecryptFile(t.Context(), keyHex, mid, dst))

	result, err := os.ReadFile(dst) //nolint:gosec // Test-owned path.
	require.NoError(t, err)
	assert.Equal(t, original, result)
}

// TestDecryptFile_InvalidKey verifies key validation.
func TestDecryptFile_InvalidKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		keyHex string
	}{
		{
			name:   "not hex",
			keyHex: "zzzz",
		},
		{
			name:   "wrong length",
			keyHex: "0011223344",
		},
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "payload")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o600))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decryptor := NewDecryptor()
			err := decryptor.DecryptFile(t.Context(), tt.keyHex, src, filepath.Join(dir, "out-"+tt.name))
			require.ErrorIs(t, err, ErrInvalidDecryptionKey)
		})
	}
}

package grabber

//go:generate $MOCKGEN -source=decryptor.go -destination=mocks/decryptor_mock.go

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/yamusic-grabber/internal/constants"
	"github.com/oshokin/yamusic-grabber/internal/logger"
)

// Decryptor defines the interface for decrypting encrypted audio payloads.
type Decryptor interface {
	// DecryptFile decrypts src into dst using the hex-encoded key from the
	// format descriptor.
	DecryptFile(ctx context.Context, keyHex, src, dst string) error
}

// DecryptorImpl implements the Decryptor interface with AES-128-CTR.
// The stream always starts at a zero counter, so decryption is a single pass
// over the file.
type DecryptorImpl struct{}

// decryptChunkSize is the read buffer size for streaming decryption.
const decryptChunkSize = 256 * 1024

// NewDecryptor creates a new Decryptor instance.
func NewDecryptor() Decryptor {
	return new(DecryptorImpl)
}

// DecryptFile decrypts src into dst.
func (d *DecryptorImpl) DecryptFile(ctx context.Context, keyHex, src, dst string) error {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDecryptionKey, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDecryptionKey, err)
	}

	// The service encrypts from a zero counter.
	stream := cipher.NewCTR(block, make([]byte, aes.BlockSize))

	input, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("failed to open encrypted file: %w", err)
	}

	defer input.Close() //nolint:errcheck // Read-only handle.

	output, err := os.OpenFile(filepath.Clean(dst),
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create decrypted file: %w", err)
	}

	writer := &cipher.StreamWriter{S: stream, W: output}

	written, err := io.CopyBuffer(writer, input, make([]byte, decryptChunkSize))
	if err != nil {
		output.Close() //nolint:errcheck,gosec // The write error takes precedence.

		return fmt.Errorf("failed to decrypt payload: %w", err)
	}

	if err = output.Close(); err != nil {
		return fmt.Errorf("failed to finalize decrypted file: %w", err)
	}

	logger.Debugf(ctx, "Decrypted %d bytes into %s", written, dst)

	return nil
}

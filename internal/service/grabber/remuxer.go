package grabber

//go:generate $MOCKGEN -source=remuxer.go -destination=mocks/remuxer_mock.go

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/oshokin/yamusic-grabber/internal/logger"
)

// Remuxer defines the interface for rewriting audio containers.
type Remuxer interface {
	// RemuxToFLAC copies the FLAC stream out of an MP4 container into a bare
	// FLAC file without re-encoding.
	RemuxToFLAC(ctx context.Context, src, dst string) error
}

// RemuxerImpl implements the Remuxer interface by shelling out to ffmpeg.
type RemuxerImpl struct {
	// ffmpegPath is the ffmpeg binary path or name.
	ffmpegPath string
	// timeout bounds one remux invocation.
	timeout time.Duration
}

// Remux timeouts. Network-mounted staging directories get a longer budget
// because the stream copy is I/O bound.
const (
	remuxTimeout             = 60 * time.Second
	remuxTimeoutNetworkMount = 120 * time.Second
)

// NewRemuxer creates a new Remuxer instance.
// The timeout is chosen from whether the staging directory lives on a network mount.
func NewRemuxer(ffmpegPath string, onNetworkMount bool) Remuxer {
	timeout := remuxTimeout
	if onNetworkMount {
		timeout = remuxTimeoutNetworkMount
	}

	return &RemuxerImpl{
		ffmpegPath: ffmpegPath,
		timeout:    timeout,
	}
}

// RemuxToFLAC copies the FLAC stream out of an MP4 container into dst.
func (r *RemuxerImpl) RemuxToFLAC(ctx context.Context, src, dst string) error {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	//nolint:gosec // The binary path comes from trusted configuration.
	cmd := exec.CommandContext(runCtx, r.ffmpegPath,
		"-i", src,
		"-c:a", "copy",
		"-y",
		dst)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	logger.Debugf(ctx, "Remuxing %s into %s", src, dst)

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return fmt.Errorf("%w: %s", ErrFFmpegNotFound, r.ffmpegPath)
		}

		if runCtx.Err() != nil {
			return fmt.Errorf("%w: timed out after %s", ErrRemuxFailed, r.timeout)
		}

		return fmt.Errorf("%w: %s: %s", ErrRemuxFailed, err, lastLine(stderr.String()))
	}

	return nil
}

// lastLine returns the last non-empty line of ffmpeg's stderr, which carries
// the actual failure reason.
func lastLine(output string) string {
	lines := bytes.Split(bytes.TrimSpace([]byte(output)), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}

	return string(bytes.TrimSpace(lines[len(lines)-1]))
}

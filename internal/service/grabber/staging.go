package grabber

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/yamusic-grabber/internal/constants"
	"github.com/oshokin/yamusic-grabber/internal/logger"
)

// StagingManager owns the intermediate files of in-flight downloads and the
// atomic publish step.
type StagingManager struct {
	// dir is the staging directory.
	dir string
	// onNetworkMount reports whether dir lives on a network mount.
	onNetworkMount bool
}

// Publish retry schedule. Renames on network mounts occasionally fail while
// the remote end still holds a handle on the file.
const (
	publishRetryAttempts = 3
	publishRetryDelay    = 2 * time.Second
)

// stagingSuffixes are the suffixes of intermediate files the sweep recognizes.
//
//nolint:gochecknoglobals // This is an immutable lookup table used as a constant.
var stagingSuffixes = []string{
	constants.SuffixPartial,
	constants.SuffixEncrypted,
	constants.SuffixDecryptedMP4,
	constants.SuffixRemuxedFLAC,
}

// stagingDirName is the staging directory created under the output path.
const stagingDirName = ".staging"

// StagingDir resolves the staging directory for an output path. Network
// mounts stage in the process temp directory so the intermediate files stay
// on a local filesystem.
func StagingDir(outputPath string) string {
	if isNetworkMount(outputPath) {
		return filepath.Join(os.TempDir(), "yamusic-grabber"+stagingDirName)
	}

	return filepath.Join(outputPath, stagingDirName)
}

// NewStagingManager creates the staging directory under dir and returns a
// manager for it.
func NewStagingManager(dir string) (*StagingManager, error) {
	if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	return &StagingManager{
		dir:            dir,
		onNetworkMount: isNetworkMount(dir),
	}, nil
}

// Dir returns the staging directory.
func (m *StagingManager) Dir() string {
	return m.dir
}

// OnNetworkMount reports whether the staging directory lives on a network mount.
func (m *StagingManager) OnNetworkMount() bool {
	return m.onNetworkMount
}

// StagingPath builds a unique intermediate path for a track with the given suffix.
func (m *StagingManager) StagingPath(trackID, suffix string) string {
	return filepath.Join(m.dir, trackID+"_"+uuid.NewString()+suffix)
}

// SweepOrphans removes intermediate files whose owning track is no longer
// active in the queue and returns how many files were deleted.
func (m *StagingManager) SweepOrphans(ctx context.Context, activeTrackIDs map[string]struct{}) (int64, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read staging directory: %w", err)
	}

	var removed int64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !hasStagingSuffix(name) {
			continue
		}

		// Staging files are named "{trackID}_{uuid}{suffix}".
		trackID, _, found := strings.Cut(name, "_")
		if found {
			if _, active := activeTrackIDs[trackID]; active {
				continue
			}
		}

		path := filepath.Join(m.dir, name)
		if removeErr := os.Remove(path); removeErr != nil {
			logger.Warnf(ctx, "Failed to remove orphaned staging file '%s': %v", path, removeErr)

			continue
		}

		logger.Debugf(ctx, "Removed orphaned staging file: %s", path)

		removed++
	}

	return removed, nil
}

// Publish moves src to dst, creating parent directories. The move is a rename
// when possible and falls back to copy-and-remove across filesystems. A
// partial file never appears at dst: the copy fallback writes through a
// partial-suffixed sibling first.
func (m *StagingManager) Publish(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("%w: %s", ErrPublishFailed, err)
	}

	var lastErr error

	for attempt := range publishRetryAttempts {
		if attempt > 0 {
			logger.Warnf(ctx, "Retrying publish of '%s' in %s: %v", dst, publishRetryDelay, lastErr)
			time.Sleep(publishRetryDelay)
		}

		if lastErr = os.Rename(src, dst); lastErr == nil {
			return nil
		}

		// A rename across filesystems cannot succeed, switch to copying.
		if copyErr := copyThenRemove(src, dst); copyErr == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrPublishFailed, lastErr)
}

// copyThenRemove copies src to a partial sibling of dst, renames it into
// place and removes src.
func copyThenRemove(src, dst string) error {
	input, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	defer input.Close() //nolint:errcheck // Read-only handle.

	partialPath := dst + constants.SuffixPartial

	output, err := os.OpenFile(filepath.Clean(partialPath),
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return err
	}

	if _, err = io.Copy(output, input); err != nil {
		output.Close()         //nolint:errcheck,gosec // The copy error takes precedence.
		os.Remove(partialPath) //nolint:errcheck,gosec // Best-effort cleanup.

		return err
	}

	if err = output.Close(); err != nil {
		return err
	}

	if err = os.Rename(partialPath, dst); err != nil {
		return err
	}

	return os.Remove(src)
}

// hasStagingSuffix reports whether the file name carries one of the
// intermediate suffixes.
func hasStagingSuffix(name string) bool {
	for _, suffix := range stagingSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

// IsNetworkPath reports whether the path points at a network location.
func IsNetworkPath(path string) bool {
	return isNetworkMount(path)
}

// isNetworkMount reports whether the path points at a network location: a UNC
// path or a "host:/share" style mount reference.
func isNetworkMount(path string) bool {
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//") {
		return true
	}

	first := path
	if index := strings.IndexAny(path, `/\`); index >= 0 {
		first = path[:index]
	}

	// A lone drive letter ("C:") is local.
	return strings.Contains(first, ":") && len(first) > 2
}

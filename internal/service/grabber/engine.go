package grabber

//go:generate $MOCKGEN -source=engine.go -destination=mocks/engine_mock.go

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/yamusic-grabber/internal/client/yandex"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/constants"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/store"
)

// Engine defines the interface for downloading one track end to end.
type Engine interface {
	// DownloadTrack runs the full pipeline for one queue item and returns the
	// catalog row of the published file. The progress callback receives
	// percentages in the 0-100 range.
	DownloadTrack(ctx context.Context, item *store.QueueItem, progress func(percent int64)) (*store.FinishedTrack, error)
}

// EngineImpl implements the Engine interface.
type EngineImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client talks to the music service.
	client yandex.Client
	// decryptor decrypts encrypted payloads.
	decryptor Decryptor
	// remuxer rewrites MP4 containers.
	remuxer Remuxer
	// tagProcessor writes metadata tags.
	tagProcessor TagProcessor
	// pathBuilder resolves published file paths.
	pathBuilder PathBuilder
	// staging owns intermediate files and the publish step.
	staging *StagingManager
}

// Progress milestones of the pipeline. The stream download covers the first
// span, the transformation steps the rest.
const (
	progressAfterDownload = 90
	progressAfterDecrypt  = 94
	progressAfterRemux    = 97
	progressComplete      = 100
)

const bytesPerMiB = 1024 * 1024

// NewEngine creates a new Engine instance.
func NewEngine(
	cfg *config.Config,
	client yandex.Client,
	decryptor Decryptor,
	remuxer Remuxer,
	tagProcessor TagProcessor,
	pathBuilder PathBuilder,
	staging *StagingManager,
) Engine {
	return &EngineImpl{
		cfg:          cfg,
		client:       client,
		decryptor:    decryptor,
		remuxer:      remuxer,
		tagProcessor: tagProcessor,
		pathBuilder:  pathBuilder,
		staging:      staging,
	}
}

// DownloadTrack runs the full pipeline for one queue item.
func (e *EngineImpl) DownloadTrack(
	ctx context.Context,
	item *store.QueueItem,
	progress func(percent int64),
) (*store.FinishedTrack, error) {
	report := func(percent int64) {
		if progress != nil {
			progress(percent)
		}
	}

	track, err := e.fetchTrackMetadata(ctx, item.TrackID)
	if err != nil {
		return nil, err
	}

	quality := item.Quality
	if quality == "" {
		quality = e.cfg.Quality
	}

	descriptors, err := e.client.GetFileInfo(ctx, item.TrackID, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	descriptor, err := yandex.ChooseFormat(descriptors, quality)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Downloading '%s - %s' as %s (%d kbps)",
		track.ArtistNames(), track.Title, descriptor.Codec, descriptor.BitrateKbps)

	currentPath, err := e.fetchStream(ctx, item.TrackID, track, descriptor, report)
	if err != nil {
		return nil, err
	}

	// Intermediate files are cleaned up on failure; success removes them as it goes.
	defer func() {
		if currentPath != "" {
			if removeErr := os.Remove(currentPath); removeErr != nil && !os.IsNotExist(removeErr) {
				logger.Warnf(ctx, "Failed to clean up staging file '%s': %v", currentPath, removeErr)
			}
		}
	}()

	currentPath, err = e.transform(ctx, item.TrackID, descriptor, currentPath, report)
	if err != nil {
		return nil, err
	}

	cover := e.fetchCover(ctx, track)

	e.writeTags(ctx, currentPath, track, descriptor, cover)

	finalPath := e.pathBuilder.BuildTrackPath(ctx, pathTokens(item, track), extensionForCodec(descriptor.Codec))

	if err = e.staging.Publish(ctx, currentPath, finalPath); err != nil {
		return nil, err
	}

	// The staging file is gone after a successful publish.
	currentPath = ""

	report(progressComplete)

	finished, err := e.buildCatalogRow(item, track, descriptor, finalPath, cover)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Published '%s' (%s)",
		finalPath, humanize.IBytes(uint64(finished.FileSizeMiB*bytesPerMiB)))

	return finished, nil
}

// fetchTrackMetadata loads the metadata of one track.
func (e *EngineImpl) fetchTrackMetadata(ctx context.Context, trackID string) (*yandex.Track, error) {
	tracks, err := e.client.GetTracksMetadata(ctx, []string{trackID})
	if err != nil {
		return nil, fmt.Errorf("failed to get track metadata: %w", err)
	}

	track, ok := tracks[trackID]
	if !ok || track == nil {
		return nil, fmt.Errorf("%w: %s", ErrTrackMetadataMissing, trackID)
	}

	return track, nil
}

// fetchStream downloads the raw payload into a staging file and returns its path.
func (e *EngineImpl) fetchStream(
	ctx context.Context,
	trackID string,
	track *yandex.Track,
	descriptor *yandex.FormatDescriptor,
	report func(percent int64),
) (string, error) {
	streamURL, err := e.client.ResolveStreamURL(ctx, descriptor)
	if err != nil {
		return "", fmt.Errorf("failed to resolve stream URL: %w", err)
	}

	partPath := e.staging.StagingPath(trackID, constants.SuffixPartial)

	f, err := os.OpenFile(filepath.Clean(partPath),
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	// Progress bars are only rendered at info verbosity and below.
	var writer io.Writer = f

	if logger.Level() <= zap.InfoLevel {
		bar := progressbar.DefaultBytes(-1, "Downloading "+track.Title)
		writer = io.MultiWriter(f, bar)
	}

	written, err := e.client.DownloadStream(ctx, streamURL, writer, func(downloaded, total int64) {
		if total > 0 {
			report(downloaded * progressAfterDownload / total)
		}
	})

	closeErr := f.Close()

	if err != nil {
		os.Remove(partPath) //nolint:errcheck,gosec // Best-effort cleanup.

		return "", fmt.Errorf("failed to download stream: %w", err)
	}

	if closeErr != nil {
		os.Remove(partPath) //nolint:errcheck,gosec // Best-effort cleanup.

		return "", fmt.Errorf("failed to finalize staging file: %w", closeErr)
	}

	logger.Debugf(ctx, "Downloaded %s into %s", humanize.IBytes(uint64(written)), partPath) //nolint:gosec // Byte counts are non-negative.

	report(progressAfterDownload)

	return partPath, nil
}

// transform decrypts and remuxes the staged payload as the descriptor requires
// and returns the path of the result.
func (e *EngineImpl) transform(
	ctx context.Context,
	trackID string,
	descriptor *yandex.FormatDescriptor,
	currentPath string,
	report func(percent int64),
) (string, error) {
	if descriptor.IsEncrypted() {
		encryptedPath := currentPath[:len(currentPath)-len(constants.SuffixPartial)] + constants.SuffixEncrypted
		if err := os.Rename(currentPath, encryptedPath); err != nil {
			return currentPath, fmt.Errorf("failed to stage encrypted file: %w", err)
		}

		decryptedPath := e.staging.StagingPath(trackID, constants.SuffixDecryptedMP4)

		if err := e.decryptor.DecryptFile(ctx, descriptor.Key, encryptedPath, decryptedPath); err != nil {
			os.Remove(encryptedPath) //nolint:errcheck,gosec // Best-effort cleanup.

			return decryptedPath, err
		}

		os.Remove(encryptedPath) //nolint:errcheck,gosec // Best-effort cleanup.
		currentPath = decryptedPath
	}

	report(progressAfterDecrypt)

	// Decrypted payloads always come out of the cipher in an MP4 container,
	// even when the service labels the codec as bare FLAC.
	if needsRemux(descriptor.Codec) || (descriptor.IsEncrypted() && isFLACCodec(descriptor.Codec)) {
		remuxedPath := e.staging.StagingPath(trackID, constants.SuffixRemuxedFLAC)

		if err := e.remuxer.RemuxToFLAC(ctx, currentPath, remuxedPath); err != nil {
			return currentPath, err
		}

		os.Remove(currentPath) //nolint:errcheck,gosec // Best-effort cleanup.
		currentPath = remuxedPath
	}

	report(progressAfterRemux)

	return currentPath, nil
}

// fetchCover downloads cover art when embedding is enabled. Failures are not
// fatal, the track is published without a cover.
func (e *EngineImpl) fetchCover(ctx context.Context, track *yandex.Track) []byte {
	if !e.cfg.EmbedCovers || track.CoverURI == "" {
		return nil
	}

	cover, err := e.client.DownloadCover(ctx, track.CoverURI)
	if err != nil {
		logger.Warnf(ctx, "Failed to download cover art: %v", err)

		return nil
	}

	return cover
}

// writeTags writes metadata tags. Tagging failures are not fatal, the audio
// itself is intact.
func (e *EngineImpl) writeTags(
	ctx context.Context,
	path string,
	track *yandex.Track,
	descriptor *yandex.FormatDescriptor,
	cover []byte,
) {
	err := e.tagProcessor.WriteTags(ctx, &WriteTagsRequest{
		TrackPath:     path,
		Format:        formatForCodec(descriptor.Codec),
		Title:         track.Title,
		Version:       track.Version,
		Artist:        track.ArtistNames(),
		Album:         track.AlbumTitle(),
		Year:          track.Year(),
		Genre:         track.Genre(),
		Label:         track.LabelName(),
		ISRC:          track.ISRC,
		TrackNumber:   track.TrackNumber(),
		Cover:         cover,
		CoverMIMEType: "image/jpeg",
	})
	if err != nil {
		logger.Warnf(ctx, "Failed to write tags to '%s': %v", path, err)
	}
}

// buildCatalogRow stats the published file and assembles its catalog row.
func (e *EngineImpl) buildCatalogRow(
	item *store.QueueItem,
	track *yandex.Track,
	descriptor *yandex.FormatDescriptor,
	finalPath string,
	cover []byte,
) (*store.FinishedTrack, error) {
	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat published file: %w", err)
	}

	return &store.FinishedTrack{
		TrackID:         item.TrackID,
		Title:           track.Title,
		Version:         track.Version,
		Artist:          track.ArtistNames(),
		Album:           track.AlbumTitle(),
		PlaylistID:      item.PlaylistID,
		PlaylistTitle:   item.PlaylistTitle,
		FilePath:        finalPath,
		FileSizeMiB:     float64(info.Size()) / bytesPerMiB,
		Quality:         qualityLabel(descriptor.Codec, descriptor.BitrateKbps),
		Format:          formatForCodec(descriptor.Codec),
		Year:            int64(track.Year()),
		Genre:           track.Genre(),
		Label:           track.LabelName(),
		ISRC:            track.ISRC,
		DurationSeconds: track.DurationSeconds(),
		Cover:           cover,
	}, nil
}

// pathTokens builds the template token values for a track.
func pathTokens(item *store.QueueItem, track *yandex.Track) map[string]string {
	return map[string]string{
		"artist":   track.ArtistNames(),
		"title":    track.Title,
		"album":    track.AlbumTitle(),
		"year":     formatNumberTag(track.Year()),
		"track":    formatNumberTag(track.TrackNumber()),
		"playlist": item.PlaylistTitle,
		"track_id": item.TrackID,
	}
}

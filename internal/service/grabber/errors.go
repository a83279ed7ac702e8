package grabber

import "errors"

// Static error definitions for better error handling.
var (
	// ErrInvalidDecryptionKey indicates that the descriptor key is not valid hex or has the wrong length.
	ErrInvalidDecryptionKey = errors.New("invalid decryption key")
	// ErrRemuxFailed indicates that the container rewrite failed.
	ErrRemuxFailed = errors.New("remux failed")
	// ErrFFmpegNotFound indicates that the ffmpeg binary is not available.
	ErrFFmpegNotFound = errors.New("ffmpeg binary not found")
	// ErrPublishFailed indicates that the finished file could not be moved to its final path.
	ErrPublishFailed = errors.New("failed to publish file")
	// ErrTrackMetadataMissing indicates that the service returned no metadata for a track.
	ErrTrackMetadataMissing = errors.New("track metadata missing")
	// ErrWorkerNotRunning indicates that the queue worker is not started.
	ErrWorkerNotRunning = errors.New("worker is not running")
	// ErrDownloadStopped indicates that the current item was interrupted by a stop request.
	ErrDownloadStopped = errors.New("download stopped")
	// ErrNothingToAdd indicates that no valid references were supplied.
	ErrNothingToAdd = errors.New("nothing to add")
)

package yandex

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrAuthRejected indicates the credential was rejected by the remote service.
	ErrAuthRejected = errors.New("credential rejected by remote service")
	// ErrMalformedResponse indicates the remote returned JSON or XML that cannot be interpreted.
	ErrMalformedResponse = errors.New("malformed response from remote service")
	// ErrNoFormatsAvailable indicates the file-info response contained no descriptors.
	ErrNoFormatsAvailable = errors.New("no format descriptors available")
	// ErrNoSuitableFormat indicates that no descriptor satisfies the selection policy.
	ErrNoSuitableFormat = errors.New("no suitable format for requested quality")
	// ErrNoDownloadURL indicates a descriptor carries neither a direct URL nor a pointer.
	ErrNoDownloadURL = errors.New("descriptor has no download URL")
	// ErrStreamRetriesExhausted indicates a streaming fetch failed after all retry attempts.
	ErrStreamRetriesExhausted = errors.New("stream fetch failed after retries")
	// ErrInvalidPlaylistReference indicates the playlist reference cannot be parsed.
	ErrInvalidPlaylistReference = errors.New("invalid playlist reference")
)

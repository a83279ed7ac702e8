package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for metadata HTTP requests.
	DefaultTimeout = 30 * time.Second

	// StreamTimeout is the overall timeout for streaming audio downloads.
	// Streams are read in chunks, so this bounds a single slow transfer, not the whole queue.
	StreamTimeout = 300 * time.Second

	// DefaultUserAgent is the default User-Agent string used for HTTP requests.
	// It mimics a common browser User-Agent to avoid being blocked by servers.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36" //nolint: lll
)

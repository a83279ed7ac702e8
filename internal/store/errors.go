package store

import "errors"

// Static error definitions for better error handling.
var (
	ErrEmptyDatabasePath = errors.New("database path is empty")
	ErrUnknownClearScope = errors.New("unknown clear scope")
	ErrUnknownStatus     = errors.New("unknown queue status")
	ErrNothingToEnqueue  = errors.New("nothing to enqueue")
)

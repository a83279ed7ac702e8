// Package store persists the download queue, the finished-track catalog and
// user settings in a local SQLite database.
package store

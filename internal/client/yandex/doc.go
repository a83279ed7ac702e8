// Package yandex implements the client for the Yandex Music wire protocol:
// an authenticated HTTP session, signed file-info requests, direct-link
// resolution, format selection, and streaming byte fetch with retries.
package yandex

// Package grabber contains the download pipeline: the per-track engine that
// fetches, decrypts, remuxes and tags audio, the queue worker that drains the
// catalog, and the controller exposed to the CLI.
package grabber

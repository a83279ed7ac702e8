// Package app wires the catalog store, the protocol client and the download
// pipeline together and executes the CLI commands on top of them.
package app

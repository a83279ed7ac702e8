// Package version holds build-time version information.
// The variables are overridden at build time via -ldflags.
package version

//nolint:gochecknoglobals // Build metadata is injected via ldflags and must be package-level.
var (
	// Version is the semantic version of the binary.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the timestamp of the build.
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Full returns the version, commit, and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}

package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/yamusic-grabber/internal/config"
)

// baseTestConfig returns a configuration that passes validation.
func baseTestConfig() *config.Config {
	//nolint:exhaustruct // Derived fields are filled by validation.
	return &config.Config{
		AuthToken:          "y0_test_token",
		Quality:            config.QualityLossless,
		OutputPath:         "/music",
		LogLevel:           "info",
		RetryAttemptsCount: 3,
	}
}

// newRootFlagSet mirrors the flag definitions of the root command.
func newRootFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("root", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "")
	flags.StringP("quality", "q", "", "")
	flags.StringP("speed-limit", "s", "", "")
	flags.Bool("clear-pending", false, "")

	return flags
}

// TestBindFlagsToConfig verifies that changed flags override the configuration.
func TestBindFlagsToConfig(t *testing.T) {
	cfg := baseTestConfig()

	flags := newRootFlagSet()
	require.NoError(t, flags.Parse([]string{
		"--output", "/elsewhere",
		"--quality", config.QualityHQ,
		"--speed-limit", "1MB",
	}))

	require.NoError(t, bindFlagsToConfig(flags, cfg))

	assert.Equal(t, "/elsewhere", cfg.OutputPath)
	assert.Equal(t, config.QualityHQ, cfg.Quality)
	assert.Equal(t, "1MB", cfg.DownloadSpeedLimit)
	assert.Positive(t, cfg.ParsedDownloadSpeedLimit)
}

// TestBindFlagsToConfig_Defaults verifies that untouched flags leave the
// configuration alone.
func TestBindFlagsToConfig_Defaults(t *testing.T) {
	cfg := baseTestConfig()

	flags := newRootFlagSet()
	require.NoError(t, flags.Parse(nil))

	require.NoError(t, bindFlagsToConfig(flags, cfg))

	assert.Equal(t, "/music", cfg.OutputPath)
	assert.Equal(t, config.QualityLossless, cfg.Quality)
}

// TestBindFlagsToConfig_InvalidQuality verifies that validation rejects bad
// flag values.
func TestBindFlagsToConfig_InvalidQuality(t *testing.T) {
	cfg := baseTestConfig()

	flags := newRootFlagSet()
	require.NoError(t, flags.Parse([]string{"--quality", "ultra"}))

	require.ErrorIs(t, bindFlagsToConfig(flags, cfg), config.ErrInvalidQuality)
}

// TestVersionCommand verifies the version output.
func TestVersionCommand(t *testing.T) {
	var output bytes.Buffer

	rootCmd.SetOut(&output)
	rootCmd.SetErr(&output)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, output.String(), "version:")
}

// TestCommandRegistration verifies that every subcommand is wired in.
func TestCommandRegistration(t *testing.T) {
	expected := []string{"status", "sweep", "clear", "remove", "requeue", "auth", "version"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], name)
	}
}

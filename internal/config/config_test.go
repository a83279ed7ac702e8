package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/yamusic-grabber/internal/constants"
)

const testConfigContent = `auth_token: "y0_test_token"
quality: "lossless"
output_path: "/tmp/music"
log_level: "info"
download_speed_limit: "1MB"
retry_attempts_count: 3
`

// validTestConfig returns a configuration that passes validation.
func validTestConfig() *Config {
	//nolint:exhaustruct // Derived fields are filled by validation.
	return &Config{
		AuthToken:          "y0_test_token",
		Quality:            QualityLossless,
		OutputPath:         "/tmp/music",
		LogLevel:           "info",
		RetryAttemptsCount: 3,
	}
}

// TestLoadConfig tests reading the configuration from a YAML file.
//
//nolint:paralleltest // Viper holds global state, the file-loading tests must not race.
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		missingFile   bool
		expectError   bool
		expectedError string
	}{
		{
			name:        "valid config file",
			content:     testConfigContent,
			expectError: false,
		},
		{
			name:          "non-existent file",
			missingFile:   true,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
		{
			name:          "invalid yaml",
			content:       "invalid: yaml: content: [unclosed",
			expectError:   true,
			expectedError: "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")

			if !tt.missingFile {
				require.NoError(t,
					os.WriteFile(configPath, []byte(tt.content), constants.DefaultFilePermissions))
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "y0_test_token", cfg.AuthToken)
			assert.Equal(t, QualityLossless, cfg.Quality)
			assert.Equal(t, "/tmp/music", cfg.OutputPath)
		})
	}
}

// TestLoadConfig_Defaults verifies the defaults applied for omitted keys.
//
//nolint:paralleltest // Viper holds global state, the file-loading tests must not race.
func TestLoadConfig_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t,
		os.WriteFile(configPath, []byte(`auth_token: "t"`), constants.DefaultFilePermissions))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, QualityLossless, cfg.Quality)
	assert.Equal(t, DefaultDatabaseFilename, cfg.DatabasePath)
	assert.Equal(t, DefaultTrackFilenameTemplate, cfg.TrackFilenameTemplate)
	assert.Equal(t, DefaultFolderTemplate, cfg.FolderTemplate)
	assert.Equal(t, DefaultFFmpegPath, cfg.FFmpegPath)
	assert.Equal(t, int64(DefaultRetryAttemptsCount), cfg.RetryAttemptsCount)
	assert.True(t, cfg.EmbedCovers)
	assert.True(t, cfg.KeepCompletedItems)
}

// TestValidateConfig tests the validation rules.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		mutate        func(cfg *Config)
		expectedError error
	}{
		{
			name:          "valid config",
			mutate:        func(_ *Config) {},
			expectedError: nil,
		},
		{
			name:          "empty auth token",
			mutate:        func(cfg *Config) { cfg.AuthToken = "" },
			expectedError: ErrEmptyAuthToken,
		},
		{
			name:          "whitespace auth token",
			mutate:        func(cfg *Config) { cfg.AuthToken = "   " },
			expectedError: ErrEmptyAuthToken,
		},
		{
			name:          "unknown quality",
			mutate:        func(cfg *Config) { cfg.Quality = "ultra" },
			expectedError: ErrInvalidQuality,
		},
		{
			name:          "empty output path",
			mutate:        func(cfg *Config) { cfg.OutputPath = " " },
			expectedError: ErrEmptyOutputPath,
		},
		{
			name:          "unknown log level",
			mutate:        func(cfg *Config) { cfg.LogLevel = "loud" },
			expectedError: ErrUnknownLogLevel,
		},
		{
			name:          "zero retry attempts",
			mutate:        func(cfg *Config) { cfg.RetryAttemptsCount = 0 },
			expectedError: ErrInvalidRetryAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validTestConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
			assert.Equal(t, APIBaseURL, cfg.APIBaseURL)
		})
	}
}

// TestValidateConfig_DownloadSpeedLimit tests speed limit parsing.
func TestValidateConfig_DownloadSpeedLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		speedLimit    string
		expectedBytes int64
		expectError   bool
	}{
		{
			name:          "empty limit",
			speedLimit:    "",
			expectedBytes: 0,
		},
		{
			name:          "zero limit",
			speedLimit:    "0",
			expectedBytes: 0,
		},
		{
			name:          "1KB limit",
			speedLimit:    "1KB",
			expectedBytes: 1000,
		},
		{
			name:          "1MB limit",
			speedLimit:    "1MB",
			expectedBytes: 1000000,
		},
		{
			name:        "garbage limit",
			speedLimit:  "very fast",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validTestConfig()
			cfg.DownloadSpeedLimit = tt.speedLimit

			err := ValidateConfig(cfg)

			if tt.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedBytes, cfg.ParsedDownloadSpeedLimit)
		})
	}
}

// TestSaveConfig verifies that the token is updated in place while the rest of
// the file keeps its key order.
//
//nolint:paralleltest // Viper holds global state, the file-loading tests must not race.
func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t,
		os.WriteFile(configPath, []byte(testConfigContent), constants.DefaultFilePermissions))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	cfg.AuthToken = "y0_replacement_token"
	require.NoError(t, SaveConfig(cfg))

	content, err := os.ReadFile(configPath) //nolint:gosec // Test-owned path.
	require.NoError(t, err)

	saved := string(content)
	assert.Contains(t, saved, "y0_replacement_token")
	assert.NotContains(t, saved, "y0_test_token")

	// Key order survives the rewrite.
	authIndex := strings.Index(saved, "auth_token")
	qualityIndex := strings.Index(saved, "quality")
	outputIndex := strings.Index(saved, "output_path")
	assert.Less(t, authIndex, qualityIndex)
	assert.Less(t, qualityIndex, outputIndex)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/yamusic-grabber/internal/constants"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// AuthToken is the credential for API access:
	// either an OAuth token (prefixes "y0_" / "AgAAAA") or a Session_id cookie value.
	AuthToken string `mapstructure:"auth_token"`
	// Quality is the preferred quality tier: "lossless", "hq" or "nq".
	Quality string `mapstructure:"quality"`
	// OutputPath is the directory where downloaded files will be saved.
	OutputPath string `mapstructure:"output_path"`
	// DatabasePath is the path to the catalog database file.
	DatabasePath string `mapstructure:"database_path"`
	// TrackFilenameTemplate is the template for naming downloaded track files.
	TrackFilenameTemplate string `mapstructure:"track_filename_template"`
	// FolderTemplate is the template for the folder structure below OutputPath.
	FolderTemplate string `mapstructure:"folder_template"`
	// FFmpegPath is the path to the ffmpeg binary used for remuxing.
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// RetryAttemptsCount is the number of retry attempts for failed stream reads.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// EmbedCovers indicates whether cover art is embedded into downloaded files.
	EmbedCovers bool `mapstructure:"embed_covers"`
	// KeepCompletedItems indicates whether completed queue rows are kept for display.
	KeepCompletedItems bool `mapstructure:"keep_completed_items"`
	// APIBaseURL is the base URL for the Yandex Music API (set automatically).
	APIBaseURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64
}

const (
	// APIBaseURL is the base URL of the Yandex Music API.
	APIBaseURL = "https://api.music.yandex.net"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".yamusic-grabber.yaml"

	// DefaultDatabaseFilename is the default name of the catalog database file.
	DefaultDatabaseFilename = ".yamusic-grabber.db"

	// DefaultTrackFilenameTemplate is the default template for naming downloaded track files.
	DefaultTrackFilenameTemplate = "{artist} - {title}"

	// DefaultFolderTemplate is the default template for the folder structure below the output path.
	DefaultFolderTemplate = "{artist}/{album}"

	// DefaultFFmpegPath is the default name of the remux binary, resolved via PATH.
	DefaultFFmpegPath = "ffmpeg"

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged HTTP dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultRetryAttemptsCount is the default number of retries for failed stream reads.
	DefaultRetryAttemptsCount = 3
)

// QualityLossless, QualityHQ and QualityNQ are the recognized quality tiers.
const (
	QualityLossless = "lossless"
	QualityHQ       = "hq"
	QualityNQ       = "nq"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyAuthToken indicates that the authentication token is missing.
	ErrEmptyAuthToken = errors.New("authentication token cannot be empty")
	// ErrInvalidQuality indicates that the quality setting is invalid.
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrEmptyOutputPath indicates that the output path is missing.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must be a positive integer")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	viper.SetDefault("quality", QualityLossless)
	viper.SetDefault("database_path", DefaultDatabaseFilename)
	viper.SetDefault("track_filename_template", DefaultTrackFilenameTemplate)
	viper.SetDefault("folder_template", DefaultFolderTemplate)
	viper.SetDefault("ffmpeg_path", DefaultFFmpegPath)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("retry_attempts_count", DefaultRetryAttemptsCount)
	viper.SetDefault("embed_covers", true)
	viper.SetDefault("keep_completed_items", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	authToken := strings.TrimSpace(cfg.AuthToken)
	if authToken == "" {
		return ErrEmptyAuthToken
	}

	cfg.APIBaseURL = APIBaseURL

	switch cfg.Quality {
	case QualityLossless, QualityHQ, QualityNQ:
	default:
		return fmt.Errorf("%w: '%s', must be one of '%s', '%s', '%s'",
			ErrInvalidQuality, cfg.Quality, QualityLossless, QualityHQ, QualityNQ)
	}

	if strings.TrimSpace(cfg.OutputPath) == "" {
		return ErrEmptyOutputPath
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err := humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}

		// io.CopyN accepts only int64 so we transform it safely in order to use it later.
		cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)
	}

	if cfg.RetryAttemptsCount <= 0 {
		return ErrInvalidRetryAttempts
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.AuthToken, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update the auth_token value in the node tree.
	updateAuthTokenInNode(&node, cfg.AuthToken)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, authToken string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("auth_token", authToken)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateAuthTokenInNode updates the auth_token value in the YAML node tree.
func updateAuthTokenInNode(node *yaml.Node, authToken string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "auth_token" {
			// Update the value while preserving style.
			valueNode.Value = authToken

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}

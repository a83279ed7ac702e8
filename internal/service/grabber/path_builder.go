package grabber

//go:generate $MOCKGEN -source=path_builder.go -destination=mocks/path_builder_mock.go

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/utils"
)

// PathBuilder defines the interface for building published file paths from
// track metadata and the configured templates.
type PathBuilder interface {
	// BuildTrackPath expands the folder and filename templates with the given
	// token values and returns the absolute path the track is published at.
	BuildTrackPath(ctx context.Context, tokens map[string]string, extension string) string
}

// PathBuilderImpl implements the PathBuilder interface.
type PathBuilderImpl struct {
	// outputPath is the root directory downloads are published under.
	outputPath string
	// filenameTemplate is the track filename template with {token} placeholders.
	filenameTemplate string
	// folderTemplate is the folder structure template with {token} placeholders.
	folderTemplate string
}

// maxSegmentLength caps each path segment to keep paths portable.
const maxSegmentLength = 200

// templateTokenPattern matches {token} placeholders in path templates.
//
//nolint:gochecknoglobals // This is an immutable, pre-compiled regex pattern and used as a constant.
var templateTokenPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// NewPathBuilder creates a new PathBuilder instance.
// Empty templates fall back to the configuration defaults.
func NewPathBuilder(outputPath, filenameTemplate, folderTemplate string) PathBuilder {
	if filenameTemplate == "" {
		filenameTemplate = config.DefaultTrackFilenameTemplate
	}

	if folderTemplate == "" {
		folderTemplate = config.DefaultFolderTemplate
	}

	return &PathBuilderImpl{
		outputPath:       outputPath,
		filenameTemplate: filenameTemplate,
		folderTemplate:   folderTemplate,
	}
}

// BuildTrackPath expands the folder and filename templates with the given
// token values. Unknown tokens expand to an empty string, each resulting path
// segment is sanitized for the filesystem and capped in length.
func (b *PathBuilderImpl) BuildTrackPath(
	ctx context.Context,
	tokens map[string]string,
	extension string,
) string {
	folder := b.expandSegments(b.folderTemplate, tokens)
	filename := b.expandSegment(b.filenameTemplate, tokens)

	if filename == "" {
		filename = tokens["track_id"]
	}

	result := filepath.Join(b.outputPath, folder, filename+extension)

	logger.Debugf(ctx, "Resolved track path: %s", result)

	return result
}

// expandSegments expands a template that may contain path separators,
// sanitizing each segment independently so separators inside token values do
// not create extra directories.
func (b *PathBuilderImpl) expandSegments(template string, tokens map[string]string) string {
	rawSegments := strings.FieldsFunc(template, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	segments := make([]string, 0, len(rawSegments))

	for _, raw := range rawSegments {
		if segment := b.expandSegment(raw, tokens); segment != "" {
			segments = append(segments, segment)
		}
	}

	return filepath.Join(segments...)
}

// expandSegment expands one path segment and sanitizes the result.
func (b *PathBuilderImpl) expandSegment(template string, tokens map[string]string) string {
	expanded := templateTokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.Trim(match, "{}")

		return tokens[name]
	})

	sanitized := utils.SanitizeFilename(strings.TrimSpace(expanded))
	if len(sanitized) > maxSegmentLength {
		sanitized = strings.TrimSpace(sanitized[:maxSegmentLength])
	}

	return sanitized
}

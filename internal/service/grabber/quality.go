package grabber

import (
	"fmt"
	"strings"

	"github.com/oshokin/yamusic-grabber/internal/client/yandex"
	"github.com/oshokin/yamusic-grabber/internal/constants"
)

// Audio format tags stored in the finished-track catalog.
const (
	// FormatFLAC marks lossless FLAC audio.
	FormatFLAC = "FLAC"
	// FormatAAC marks AAC audio in an MP4 container.
	FormatAAC = "AAC"
	// FormatMP3 marks MPEG layer 3 audio.
	FormatMP3 = "MP3"
)

// losslessQualityLabel is the human-readable quality of FLAC downloads.
const losslessQualityLabel = "16-bit/48.0kHz"

// formatForCodec maps a service codec to the catalog format tag.
func formatForCodec(codec string) string {
	switch {
	case isFLACCodec(codec):
		return FormatFLAC
	case codec == yandex.CodecMP3:
		return FormatMP3
	default:
		return FormatAAC
	}
}

// extensionForCodec maps a service codec to the published file extension.
// MP4-contained FLAC is remuxed before publishing, so it ends up as .flac.
func extensionForCodec(codec string) string {
	switch {
	case isFLACCodec(codec):
		return constants.ExtensionFLAC
	case codec == yandex.CodecMP3:
		return constants.ExtensionMP3
	default:
		return constants.ExtensionM4A
	}
}

// qualityLabel builds the human-readable quality string stored in the catalog,
// e.g. "16-bit/48.0kHz" for FLAC or "320kbps/44.1kHz" for lossy audio.
func qualityLabel(codec string, bitrateKbps int) string {
	if isFLACCodec(codec) {
		return losslessQualityLabel
	}

	if bitrateKbps <= 0 {
		return strings.ToUpper(formatForCodec(codec))
	}

	return fmt.Sprintf("%dkbps/44.1kHz", bitrateKbps)
}

// isFLACCodec reports whether the codec belongs to the FLAC family.
func isFLACCodec(codec string) bool {
	return codec == yandex.CodecFLAC || codec == yandex.CodecFLACMP4
}

// needsRemux reports whether the codec's payload arrives in an MP4 container
// that must be rewritten before the file can be published.
func needsRemux(codec string) bool {
	return codec == yandex.CodecFLACMP4
}

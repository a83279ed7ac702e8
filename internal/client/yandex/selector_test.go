package yandex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChooseFormat verifies the selection policy across quality tiers.
//
//nolint:funlen // Table-driven test covering the whole policy.
func TestChooseFormat(t *testing.T) {
	t.Parallel()

	flacRaw := &FormatDescriptor{Codec: CodecFLAC, BitrateKbps: 1411, Transport: TransportRaw}
	flacMP4 := &FormatDescriptor{Codec: CodecFLACMP4, BitrateKbps: 1411, Transport: TransportEncRaw, Key: "k"}
	aac256 := &FormatDescriptor{Codec: CodecAAC, BitrateKbps: 256, Transport: TransportEncRaw, Key: "k"}
	aacMP4256 := &FormatDescriptor{Codec: CodecAACMP4, BitrateKbps: 256, Transport: TransportEncRaw, Key: "k"}
	aac192 := &FormatDescriptor{Codec: CodecAAC, BitrateKbps: 192, Transport: TransportRaw}
	mp3320 := &FormatDescriptor{Codec: CodecMP3, BitrateKbps: 320, Transport: TransportRaw}
	mp3128 := &FormatDescriptor{Codec: CodecMP3, BitrateKbps: 128, Transport: TransportRaw}

	tests := []struct {
		name        string
		descriptors []*FormatDescriptor
		quality     string
		expected    *FormatDescriptor
		wantErr     error
	}{
		{
			name:        "lossless picks flac",
			descriptors: []*FormatDescriptor{mp3320, flacMP4, aac256},
			quality:     "lossless",
			expected:    flacMP4,
		},
		{
			name:        "lossless prefers raw transport among flac variants",
			descriptors: []*FormatDescriptor{flacMP4, flacRaw},
			quality:     "lossless",
			expected:    flacRaw,
		},
		{
			name:        "lossless falls back to aac 256",
			descriptors: []*FormatDescriptor{aac192, aacMP4256, mp3320},
			quality:     "lossless",
			expected:    aacMP4256,
		},
		{
			name:        "lossless falls back to best remaining format",
			descriptors: []*FormatDescriptor{mp3128, mp3320, aac192},
			quality:     "lossless",
			expected:    mp3320,
		},
		{
			name:        "hq picks highest aac",
			descriptors: []*FormatDescriptor{mp3320, aac192, aac256},
			quality:     "hq",
			expected:    aac256,
		},
		{
			name:        "hq falls back to highest mp3",
			descriptors: []*FormatDescriptor{mp3128, mp3320},
			quality:     "hq",
			expected:    mp3320,
		},
		{
			name:        "nq picks lowest mp3",
			descriptors: []*FormatDescriptor{mp3320, mp3128, aac256},
			quality:     "nq",
			expected:    mp3128,
		},
		{
			name:        "nq falls back to lowest of anything",
			descriptors: []*FormatDescriptor{aac256, aac192},
			quality:     "nq",
			expected:    aac192,
		},
		{
			name:        "empty list",
			descriptors: nil,
			quality:     "lossless",
			wantErr:     ErrNoFormatsAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chosen, err := ChooseFormat(tt.descriptors, tt.quality)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Same(t, tt.expected, chosen)
		})
	}
}

// TestChooseFormat_TieBreakListingOrder verifies that fully equal candidates
// resolve to the first one listed.
func TestChooseFormat_TieBreakListingOrder(t *testing.T) {
	t.Parallel()

	first := &FormatDescriptor{Codec: CodecMP3, BitrateKbps: 320, Transport: TransportRaw}
	second := &FormatDescriptor{Codec: CodecMP3, BitrateKbps: 320, Transport: TransportRaw}

	chosen, err := ChooseFormat([]*FormatDescriptor{first, second}, "hq")
	require.NoError(t, err)
	assert.Same(t, first, chosen)
}

// TestFormatDescriptor_IsEncrypted verifies that the transport alone decides
// whether the decrypt step runs.
func TestFormatDescriptor_IsEncrypted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		descriptor *FormatDescriptor
		expected   bool
	}{
		{
			name:       "encraw with key",
			descriptor: &FormatDescriptor{Codec: CodecFLACMP4, Transport: TransportEncRaw, Key: "k"},
			expected:   true,
		},
		{
			name:       "encraw without key",
			descriptor: &FormatDescriptor{Codec: CodecFLACMP4, Transport: TransportEncRaw},
			expected:   true,
		},
		{
			name:       "raw transport",
			descriptor: &FormatDescriptor{Codec: CodecMP3, Transport: TransportRaw},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.descriptor.IsEncrypted())
		})
	}
}

package yandex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFileInfoResponse covers every response shape the service is known to produce.
func TestParseFileInfoResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		expected []*FormatDescriptor
		wantErr  error
	}{
		{
			name:    "top-level list",
			payload: `[{"codec":"flac","bitrate":1411,"transport":"encraw","key":"00112233445566778899aabbccddeeff","url":"https://strm.example/x.mp4"}]`,
			expected: []*FormatDescriptor{{
				Codec:       "flac",
				BitrateKbps: 1411,
				Transport:   "encraw",
				Key:         "00112233445566778899aabbccddeeff",
				DirectURL:   "https://strm.example/x.mp4",
			}},
		},
		{
			name:    "result with downloadInfo list",
			payload: `{"result":{"downloadInfo":[{"codec":"mp3","bitrateInKbps":320,"transport":"raw","downloadInfoUrl":"https://storage.example/download-info/1"}]}}`,
			expected: []*FormatDescriptor{{
				Codec:           "mp3",
				BitrateKbps:     320,
				Transport:       "raw",
				DownloadInfoURL: "https://storage.example/download-info/1",
			}},
		},
		{
			name:    "result list",
			payload: `{"result":[{"codec":"aac","bitrate":256,"transport":"encraw","key":"ffeeddccbbaa99887766554433221100","urls":["https://strm.example/a.mp4"]}]}`,
			expected: []*FormatDescriptor{{
				Codec:       "aac",
				BitrateKbps: 256,
				Transport:   "encraw",
				Key:         "ffeeddccbbaa99887766554433221100",
				DirectURL:   "https://strm.example/a.mp4",
			}},
		},
		{
			name:    "result single descriptor",
			payload: `{"result":{"codec":"aac-mp4","bitrate":256,"transport":"encraw","key":"00112233445566778899aabbccddeeff","url":"https://strm.example/b.mp4"}}`,
			expected: []*FormatDescriptor{{
				Codec:       "aac-mp4",
				BitrateKbps: 256,
				Transport:   "encraw",
				Key:         "00112233445566778899aabbccddeeff",
				DirectURL:   "https://strm.example/b.mp4",
			}},
		},
		{
			name:    "bare descriptor",
			payload: `{"codec":"mp3","bitrate":128,"url":"https://strm.example/c.mp3"}`,
			expected: []*FormatDescriptor{{
				Codec:       "mp3",
				BitrateKbps: 128,
				Transport:   "raw",
				DirectURL:   "https://strm.example/c.mp3",
			}},
		},
		{
			name:    "flac mentioned in url overrides codec",
			payload: `[{"codec":"aac","bitrate":1411,"transport":"encraw","key":"00112233445566778899aabbccddeeff","url":"https://strm.example/track.flac.mp4"}]`,
			expected: []*FormatDescriptor{{
				Codec:       "flac",
				BitrateKbps: 1411,
				Transport:   "encraw",
				Key:         "00112233445566778899aabbccddeeff",
				DirectURL:   "https://strm.example/track.flac.mp4",
			}},
		},
		{
			name:    "url pointing at download-info becomes a pointer",
			payload: `[{"codec":"mp3","bitrate":192,"url":"https://storage.example/download-info/abc"}]`,
			expected: []*FormatDescriptor{{
				Codec:           "mp3",
				BitrateKbps:     192,
				Transport:       "raw",
				DownloadInfoURL: "https://storage.example/download-info/abc",
			}},
		},
		{
			name:    "empty result",
			payload: `{"result":[]}`,
			wantErr: ErrNoFormatsAvailable,
		},
		{
			name:    "malformed json",
			payload: `{"result":`,
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			descriptors, err := parseFileInfoResponse([]byte(tt.payload))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, descriptors)
		})
	}
}

// TestParseDirectLinkXML verifies direct-link synthesis from the XML document.
func TestParseDirectLinkXML(t *testing.T) {
	t.Parallel()

	payload := `<?xml version="1.0" encoding="utf-8"?>
<download-info>
	<host>s123.storage.example</host>
	<path>/rmusic/U2FsdGVk/12345</path>
	<ts>0006361e3b3c</ts>
	<s>8e9f3c6b0b</s>
</download-info>`

	link, err := parseDirectLinkXML([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "https://s123.storage.example/get-mp3/8e9f3c6b0b/0006361e3b3c/rmusic/U2FsdGVk/12345", link)
}

// TestParseDirectLinkXML_Invalid verifies malformed documents are rejected.
func TestParseDirectLinkXML_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "not xml",
			payload: `{"host":"nope"}`,
		},
		{
			name:    "missing host",
			payload: `<download-info><path>/p</path><ts>1</ts><s>2</s></download-info>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseDirectLinkXML([]byte(tt.payload))
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

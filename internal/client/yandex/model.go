package yandex

import (
	"encoding/json"
	"strings"
)

// Track holds the metadata of a single track as returned by the tracks endpoint.
type Track struct {
	// ID is the track identifier; the API returns it as either a number or a string.
	ID json.Number `json:"id"`
	// Title is the track title.
	Title string `json:"title"`
	// Version is an optional title qualifier (e.g. "Remastered").
	Version string `json:"version,omitempty"`
	// DurationMs is the track duration in milliseconds.
	DurationMs int64 `json:"durationMs"`
	// CoverURI is the cover art URI template with a "%%" size placeholder.
	CoverURI string `json:"coverUri"`
	// ISRC is the recording code when the service exposes one.
	ISRC string `json:"isrc,omitempty"`
	// Artists lists the performing artists.
	Artists []Artist `json:"artists"`
	// Albums lists the albums this track appears on.
	Albums []Album `json:"albums"`
}

// Artist is a performing artist reference.
type Artist struct {
	// Name is the artist's display name.
	Name string `json:"name"`
}

// Album is an album reference attached to a track.
type Album struct {
	// Title is the album title.
	Title string `json:"title"`
	// Year is the release year.
	Year int `json:"year"`
	// Genre is the album genre identifier.
	Genre string `json:"genre"`
	// Labels lists the record labels.
	Labels []Label `json:"labels"`
	// TrackPosition is the position of the referencing track on this album.
	TrackPosition *TrackPosition `json:"trackPosition,omitempty"`
}

// Label is a record label reference.
type Label struct {
	// Name is the label name.
	Name string `json:"name"`
}

// TrackPosition is the position of a track within an album.
type TrackPosition struct {
	// Index is the 1-based track number.
	Index int `json:"index"`
}

// ArtistNames joins all artist names with a comma.
func (t *Track) ArtistNames() string {
	names := make([]string, 0, len(t.Artists))
	for _, artist := range t.Artists {
		if artist.Name != "" {
			names = append(names, artist.Name)
		}
	}

	return strings.Join(names, ", ")
}

// AlbumTitle returns the title of the first album, if any.
func (t *Track) AlbumTitle() string {
	if len(t.Albums) == 0 {
		return ""
	}

	return t.Albums[0].Title
}

// Year returns the release year of the first album, if any.
func (t *Track) Year() int {
	if len(t.Albums) == 0 {
		return 0
	}

	return t.Albums[0].Year
}

// Genre returns the genre of the first album, if any.
func (t *Track) Genre() string {
	if len(t.Albums) == 0 {
		return ""
	}

	return t.Albums[0].Genre
}

// LabelName returns the name of the first label of the first album, if any.
func (t *Track) LabelName() string {
	if len(t.Albums) == 0 || len(t.Albums[0].Labels) == 0 {
		return ""
	}

	return t.Albums[0].Labels[0].Name
}

// TrackNumber returns the 1-based position of the track on its first album, or 0.
func (t *Track) TrackNumber() int {
	if len(t.Albums) == 0 || t.Albums[0].TrackPosition == nil {
		return 0
	}

	return t.Albums[0].TrackPosition.Index
}

// DurationSeconds returns the track duration in whole seconds.
func (t *Track) DurationSeconds() int64 {
	return t.DurationMs / 1000 //nolint:mnd // Milliseconds to seconds.
}

// FormatDescriptor is one available encoding of a track as reported by the
// file-info endpoint, normalized from any of the response shapes.
type FormatDescriptor struct {
	// Codec is the audio codec identifier (flac, flac-mp4, aac, aac-mp4, he-aac, he-aac-mp4, mp3).
	Codec string
	// BitrateKbps is the reported bitrate in kilobits per second.
	BitrateKbps int
	// Transport is either "raw" (plain bytes) or "encraw" (AES-CTR encrypted).
	Transport string
	// Key is the hex-encoded 16-byte decryption key for encraw transports.
	Key string
	// DirectURL is a resolved stream URL, when the service returned one.
	DirectURL string
	// DownloadInfoURL is a pointer that resolves to a direct URL via an XML document.
	DownloadInfoURL string
}

// IsEncrypted reports whether the payload requires the decrypt step.
// The transport alone decides: an encraw descriptor without a key is still
// ciphertext, and the decryptor rejects the missing key.
func (d *FormatDescriptor) IsEncrypted() bool {
	return d.Transport == TransportEncRaw
}

// IsLosslessCodec reports whether the codec carries a FLAC stream.
func (d *FormatDescriptor) IsLosslessCodec() bool {
	return d.Codec == CodecFLAC || d.Codec == CodecFLACMP4
}

// AccountStatus is the result of the account probe.
type AccountStatus struct {
	// UID is the numeric account identifier.
	UID json.Number `json:"uid"`
	// Login is the account login.
	Login string `json:"login"`
	// HasPlus reports whether the account carries an active subscription.
	HasPlus bool `json:"hasPlus"`
}

// Playlist holds a playlist's identity and contents.
type Playlist struct {
	// Kind is the playlist identifier within the owner's namespace.
	Kind json.Number `json:"kind"`
	// UID is the owner's account identifier.
	UID json.Number `json:"uid"`
	// Title is the playlist title.
	Title string `json:"title"`
	// Tracks lists the playlist entries.
	Tracks []PlaylistEntry `json:"tracks"`
}

// Key returns the canonical "owner:kind" playlist identifier.
func (p *Playlist) Key() string {
	return p.UID.String() + ":" + p.Kind.String()
}

// PlaylistEntry is one entry of a playlist.
type PlaylistEntry struct {
	// ID is the track identifier of the entry.
	ID json.Number `json:"id"`
	// Track is the embedded track metadata, when the service includes it.
	Track *Track `json:"track,omitempty"`
}

// Metadata returns the entry's track metadata. Entries the service returned
// without embedded metadata are reduced to their track ID; entries without
// either are dropped by returning nil.
func (e *PlaylistEntry) Metadata() *Track {
	if e.Track != nil {
		return e.Track
	}

	if e.ID.String() == "" {
		return nil
	}

	//nolint:exhaustruct // Only the identifier is known for bare entries.
	return &Track{ID: e.ID}
}

// FetchJSONResult wraps a decoded JSON payload together with the HTTP status code.
type FetchJSONResult[T any] struct {
	// Data is the decoded payload, nil on failure.
	Data *T
	// StatusCode is the HTTP status code of the response.
	StatusCode int
}

// ProgressFunc receives the number of bytes downloaded so far and the expected
// total (-1 when unknown). Implementations must be fast; the client throttles
// invocations to at most one per progressInterval.
type ProgressFunc func(downloaded, total int64)

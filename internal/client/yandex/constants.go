package yandex

import "time"

const (
	// apiFileInfoURI is the URI path for the signed file-info endpoint.
	apiFileInfoURI = "get-file-info"
	// apiTracksURI is the URI path for batch track metadata.
	apiTracksURI = "tracks"
	// apiAccountStatusURI is the URI path for the account/subscription probe.
	apiAccountStatusURI = "account/status"
	// apiPlaylistURIFormat is the URI path template for playlist contents (owner, kind).
	apiPlaylistURIFormat = "users/%s/playlists/%s"
)

const (
	// signingSecret is the fixed HMAC key baked into the desktop client.
	signingSecret = "kzqU4XhfCaY6B6JTHODeq5"
	// signPayloadSuffix is the codec/transport tail of the signed payload.
	// It is the codec list with commas removed, followed by the transport list.
	signPayloadSuffix = "flacaache-aacmp3flac-mp4aac-mp4he-aac-mp4encraw"
	// queryCodecs is the literal codecs query parameter of the file-info request.
	queryCodecs = "flac,aac,he-aac,mp3,flac-mp4,aac-mp4,he-aac-mp4"
	// queryTransports is the literal transports query parameter of the file-info request.
	queryTransports = "encraw"
)

// Codec identifiers reported by the file-info endpoint.
const (
	CodecFLAC     = "flac"
	CodecFLACMP4  = "flac-mp4"
	CodecAAC      = "aac"
	CodecAACMP4   = "aac-mp4"
	CodecHEAAC    = "he-aac"
	CodecHEAACMP4 = "he-aac-mp4"
	CodecMP3      = "mp3"
)

// Transport identifiers reported by the file-info endpoint.
const (
	TransportRaw    = "raw"
	TransportEncRaw = "encraw"
)

const (
	// desktopClientID identifies the Windows desktop client; used with OAuth tokens.
	desktopClientID = "YandexMusicDesktopAppWindows/5.23.2"
	// webClientID identifies the web-next client; used with Session_id cookies.
	webClientID = "YandexMusicWebNext/1.0.0"

	// oauthTokenPrefixY0 and oauthTokenPrefixAgAAAA mark OAuth tokens;
	// any other credential is treated as a Session_id cookie value.
	oauthTokenPrefixY0     = "y0_"
	oauthTokenPrefixAgAAAA = "AgAAAA"

	// sessionCookieName is the cookie carrying a web session credential.
	sessionCookieName = "Session_id"
	// sessionCookieURL is the URL whose domain scope receives the session cookie.
	sessionCookieURL = "https://music.yandex.ru"
)

const (
	// downloadChunkSize is the read size for streaming downloads.
	downloadChunkSize = 64 * 1024
	// progressInterval is the minimum interval between progress callbacks.
	progressInterval = 100 * time.Millisecond
	// retryBaseDelay is the base delay for exponential backoff between stream retries.
	retryBaseDelay = 2 * time.Second

	// coverSize is the size substituted into cover URI templates.
	coverSize = "600x600"
)

const (
	// tracksCacheSize defines the maximum number of track metadata entries to cache.
	// Sized to hold recently accessed tracks.
	tracksCacheSize = 10000
	// playlistsCacheSize defines the maximum number of playlist entries to cache.
	// Playlists don't change frequently, so we cache them.
	playlistsCacheSize = 2000
)

package yandex

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	http_transport "github.com/oshokin/yamusic-grabber/internal/transport/http"
	"github.com/oshokin/yamusic-grabber/internal/utils"
)

// Client defines the interface for interacting with the Yandex Music API.
type Client interface {
	// GetAccountStatus probes the account and reports its subscription state.
	GetAccountStatus(ctx context.Context) (*AccountStatus, error)
	// GetTracksMetadata retrieves metadata for the specified track IDs, keyed by track ID.
	GetTracksMetadata(ctx context.Context, trackIDs []string) (map[string]*Track, error)
	// GetPlaylist resolves a playlist reference ("owner:kind" or a playlist URL) to its contents.
	GetPlaylist(ctx context.Context, playlistRef string) (*Playlist, error)
	// GetFileInfo performs the signed file-info request and returns the available format descriptors.
	GetFileInfo(ctx context.Context, trackID, quality string) ([]*FormatDescriptor, error)
	// ResolveStreamURL turns a descriptor into a fetchable stream URL,
	// following the XML direct-link pointer when necessary.
	ResolveStreamURL(ctx context.Context, descriptor *FormatDescriptor) (string, error)
	// DownloadStream streams the payload at streamURL into dst with chunked reads and retries.
	DownloadStream(ctx context.Context, streamURL string, dst io.Writer, progress ProgressFunc) (int64, error)
	// DownloadCover fetches cover art bytes for a cover URI template.
	DownloadCover(ctx context.Context, coverURI string) ([]byte, error)
}

// ClientImpl implements the Client interface for interacting with the Yandex Music API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL for API requests.
	baseURL string
	// httpClient is the HTTP client for metadata requests.
	httpClient *http.Client
	// streamClient is the HTTP client for streaming downloads; it carries a longer timeout.
	streamClient *http.Client
	// tracksCache caches track metadata to reduce duplicate API calls for the same tracks.
	tracksCache *lru.Cache[string, *Track]
	// playlistsCache caches playlist contents to reduce duplicate API calls for the same playlists.
	playlistsCache *lru.Cache[string, *Playlist]
}

// playlistReferencePattern matches playlist URLs of the form
// ".../users/{owner}/playlists/{kind}".
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var playlistReferencePattern = regexp.MustCompile(`users/(?P<owner>[^/?#]+)/playlists/(?P<kind>\d+)`)

// NewClient creates and returns a new instance of ClientImpl.
// The credential in the configuration decides the session mode: OAuth tokens
// are attached as an Authorization header with the desktop client identifier,
// anything else is treated as a Session_id cookie with the web client identifier.
func NewClient(cfg *config.Config) (Client, error) {
	baseURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid host URL: %w", err)
	}

	token := strings.TrimSpace(cfg.AuthToken)
	headers := make(map[string]string)

	var cookies *cookiejar.Jar

	if isOAuthToken(token) {
		headers["Authorization"] = "OAuth " + token
		headers["X-Yandex-Music-Client"] = desktopClientID
	} else {
		cookies, err = cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}

		cookieURL, parseErr := url.Parse(sessionCookieURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid session cookie URL: %w", parseErr)
		}

		cookies.SetCookies(cookieURL, []*http.Cookie{{
			Name:   sessionCookieName,
			Value:  token,
			Domain: ".yandex.ru",
		}})

		headers["x-yandex-music-client"] = webClientID
		headers["X-Requested-With"] = "XMLHttpRequest"
	}

	// Both clients share one transport chain; they differ only in timeout.
	transport := http_transport.NewHeaderInjector(
		http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		headers)

	httpClient := &http.Client{
		Transport: transport,
		Jar:       cookies,
		Timeout:   http_transport.DefaultTimeout,
	}

	streamClient := &http.Client{
		Transport: transport,
		Jar:       cookies,
		Timeout:   http_transport.StreamTimeout,
	}

	// Initialize LRU caches for metadata to reduce redundant API calls.
	tracksCache, err := lru.New[string, *Track](tracksCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracks cache: %w", err)
	}

	playlistsCache, err := lru.New[string, *Playlist](playlistsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlists cache: %w", err)
	}

	return &ClientImpl{
		cfg:            cfg,
		baseURL:        baseURL.String(),
		httpClient:     httpClient,
		streamClient:   streamClient,
		tracksCache:    tracksCache,
		playlistsCache: playlistsCache,
	}, nil
}

// isOAuthToken reports whether the credential looks like an OAuth token.
func isOAuthToken(token string) bool {
	return strings.HasPrefix(token, oauthTokenPrefixY0) || strings.HasPrefix(token, oauthTokenPrefixAgAAAA)
}

// getAccountStatusResponse is the envelope of the account/status endpoint.
type getAccountStatusResponse struct {
	Result struct {
		Account struct {
			UID   json.Number `json:"uid"`
			Login string      `json:"login"`
		} `json:"account"`
		Plus struct {
			HasPlus bool `json:"hasPlus"`
		} `json:"plus"`
	} `json:"result"`
}

// GetAccountStatus probes the account and reports its subscription state.
func (c *ClientImpl) GetAccountStatus(ctx context.Context) (*AccountStatus, error) {
	result, err := fetchJSON[getAccountStatusResponse](c, ctx, apiAccountStatusURI)
	if err != nil {
		return nil, err
	}

	account := result.Data.Result.Account

	return &AccountStatus{
		UID:     account.UID,
		Login:   account.Login,
		HasPlus: result.Data.Result.Plus.HasPlus,
	}, nil
}

// getTracksResponse is the envelope of the tracks endpoint.
type getTracksResponse struct {
	Result []*Track `json:"result"`
}

// GetTracksMetadata retrieves metadata for the specified track IDs.
// Uses an LRU cache to avoid redundant API calls for the same tracks.
func (c *ClientImpl) GetTracksMetadata(ctx context.Context, trackIDs []string) (map[string]*Track, error) {
	result := make(map[string]*Track)
	uncachedIDs := make([]string, 0, len(trackIDs))

	// Check cache first for each track ID.
	for _, id := range trackIDs {
		if cached, ok := c.tracksCache.Get(id); ok {
			result[id] = cached
			logger.Debugf(ctx, "Track cache hit for ID: %s", id)
		} else {
			uncachedIDs = append(uncachedIDs, id)
		}
	}

	// If all tracks were cached, return immediately.
	if len(uncachedIDs) == 0 {
		return result, nil
	}

	logger.Debugf(ctx, "Fetching %d uncached tracks from API", len(uncachedIDs))

	query := url.Values{}
	query.Set("track-ids", strings.Join(uncachedIDs, ","))

	response, err := fetchJSONWithQuery[getTracksResponse](c, ctx, apiTracksURI, query)
	if err != nil {
		return nil, err
	}

	// Store fetched tracks in cache and add to result.
	for _, track := range response.Data.Result {
		if track == nil {
			continue
		}

		id := track.ID.String()
		c.tracksCache.Add(id, track)
		result[id] = track
	}

	return result, nil
}

// getPlaylistResponse is the envelope of the playlist endpoint.
type getPlaylistResponse struct {
	Result *Playlist `json:"result"`
}

// GetPlaylist resolves a playlist reference to its contents.
// The reference is either "owner:kind" or a playlist URL containing
// "users/{owner}/playlists/{kind}". Uses an LRU cache keyed by owner and kind.
func (c *ClientImpl) GetPlaylist(ctx context.Context, playlistRef string) (*Playlist, error) {
	owner, kind, err := parsePlaylistReference(playlistRef)
	if err != nil {
		return nil, err
	}

	cacheKey := owner + ":" + kind
	if cached, ok := c.playlistsCache.Get(cacheKey); ok {
		logger.Debugf(ctx, "Playlist cache hit for %s", cacheKey)

		return cached, nil
	}

	uri := fmt.Sprintf(apiPlaylistURIFormat, owner, kind)

	response, err := fetchJSON[getPlaylistResponse](c, ctx, uri)
	if err != nil {
		return nil, err
	}

	playlist := response.Data.Result
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist payload is empty", ErrMalformedResponse)
	}

	c.playlistsCache.Add(cacheKey, playlist)

	return playlist, nil
}

// parsePlaylistReference extracts (owner, kind) from a playlist reference.
func parsePlaylistReference(playlistRef string) (string, string, error) {
	playlistRef = strings.TrimSpace(playlistRef)

	if owner := utils.ExtractNamedGroup(playlistReferencePattern, "owner", playlistRef); owner != "" {
		kind := utils.ExtractNamedGroup(playlistReferencePattern, "kind", playlistRef)
		if kind != "" {
			return owner, kind, nil
		}
	}

	if owner, kind, found := strings.Cut(playlistRef, ":"); found && owner != "" && kind != "" {
		return owner, kind, nil
	}

	return "", "", fmt.Errorf("%w: '%s'", ErrInvalidPlaylistReference, playlistRef)
}

// GetFileInfo performs the signed file-info request and returns the available
// format descriptors normalized from whatever response shape the service used.
func (c *ClientImpl) GetFileInfo(ctx context.Context, trackID, quality string) ([]*FormatDescriptor, error) {
	query := buildFileInfoQuery(time.Now().Unix(), trackID, quality)

	body, _, err := c.fetchBytes(ctx, apiFileInfoURI, query)
	if err != nil {
		return nil, err
	}

	return parseFileInfoResponse(body)
}

// ResolveStreamURL turns a descriptor into a fetchable stream URL.
// Descriptors carrying only a downloadInfoUrl pointer are resolved through the
// XML direct-link document.
func (c *ClientImpl) ResolveStreamURL(ctx context.Context, descriptor *FormatDescriptor) (string, error) {
	if descriptor.DirectURL != "" {
		return descriptor.DirectURL, nil
	}

	if descriptor.DownloadInfoURL == "" {
		return "", ErrNoDownloadURL
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, descriptor.DownloadInfoURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	return parseDirectLinkXML(body)
}

// DownloadStream streams the payload at streamURL into dst.
// The stream is read in chunks; transient transport failures are retried with
// exponential backoff, resuming from the last written byte via a Range header.
// The progress callback is invoked at most once per progressInterval.
func (c *ClientImpl) DownloadStream(
	ctx context.Context,
	streamURL string,
	dst io.Writer,
	progress ProgressFunc,
) (int64, error) {
	var (
		written  int64
		total    int64 = -1
		lastErr  error
		attempts = c.cfg.RetryAttemptsCount
	)

	for attempt := int64(0); attempt <= attempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			logger.Warnf(ctx, "Stream read failed, retrying in %s (%d attempts left): %v",
				delay, attempts-attempt+1, lastErr)

			select {
			case <-ctx.Done():
				return written, ctx.Err()
			case <-time.After(delay):
			}
		}

		chunkTotal, err := c.streamChunks(ctx, streamURL, dst, &written, &total, progress)
		if err == nil {
			return chunkTotal, nil
		}

		// Cancellation and HTTP status errors are not retryable.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, ErrUnexpectedHTTPStatus) {
			return written, err
		}

		lastErr = err
	}

	return written, fmt.Errorf("%w: %w", ErrStreamRetriesExhausted, lastErr)
}

// streamChunks performs one GET attempt, resuming from *written bytes.
func (c *ClientImpl) streamChunks(
	ctx context.Context,
	streamURL string,
	dst io.Writer,
	written *int64,
	total *int64,
	progress ProgressFunc,
) (int64, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, http.NoBody)
	if err != nil {
		return *written, err
	}

	request.Header.Set("Range", fmt.Sprintf("bytes=%d-", *written))

	response, err := c.streamClient.Do(request)
	if err != nil {
		return *written, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusPartialContent {
		return *written, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	// A full response restarts the stream from the beginning.
	if response.StatusCode == http.StatusOK && *written > 0 {
		*written = 0
	}

	if *total < 0 && response.ContentLength > 0 {
		*total = *written + response.ContentLength
	}

	var (
		buffer       = make([]byte, downloadChunkSize)
		lastProgress time.Time
		throttle     = newSpeedThrottle(c.cfg.ParsedDownloadSpeedLimit)
	)

	for {
		select {
		case <-ctx.Done():
			return *written, ctx.Err()
		default:
		}

		n, readErr := response.Body.Read(buffer)
		if n > 0 {
			if _, writeErr := dst.Write(buffer[:n]); writeErr != nil {
				return *written, writeErr
			}

			*written += int64(n)

			if progress != nil && time.Since(lastProgress) >= progressInterval {
				progress(*written, *total)

				lastProgress = time.Now()
			}

			throttle.wait(*written)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				if progress != nil {
					progress(*written, *total)
				}

				return *written, nil
			}

			return *written, readErr
		}
	}
}

// speedThrottle slows chunked reads down to a configured bytes-per-second rate.
type speedThrottle struct {
	// limit is the allowed rate in bytes per second; zero disables throttling.
	limit int64
	// start is when the transfer began.
	start time.Time
}

func newSpeedThrottle(limit int64) *speedThrottle {
	return &speedThrottle{
		limit: limit,
		start: time.Now(),
	}
}

// wait sleeps long enough to keep the transfer at or below the configured rate.
func (t *speedThrottle) wait(written int64) {
	if t.limit <= 0 {
		return
	}

	expected := time.Duration(written) * time.Second / time.Duration(t.limit)
	if elapsed := time.Since(t.start); expected > elapsed {
		time.Sleep(expected - elapsed)
	}
}

// DownloadCover fetches cover art bytes for a cover URI template.
// The URI is the protocol-relative template from track metadata with a "%%"
// size placeholder.
func (c *ClientImpl) DownloadCover(ctx context.Context, coverURI string) ([]byte, error) {
	if coverURI == "" {
		return nil, nil
	}

	coverURL := strings.Replace(coverURI, "%%", coverSize, 1)
	if !strings.HasPrefix(coverURL, "http") {
		coverURL = "https://" + coverURL
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return io.ReadAll(response.Body)
}

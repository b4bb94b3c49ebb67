package soundcloud

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/creachadair/jtree"

	"github.com/jaki95/soundcloud-playlist/config"
	"github.com/jaki95/soundcloud-playlist/internal/domain"
)

// ErrDisabled reports that SoundCloud support is switched off because no
// client ID is configured.
var ErrDisabled = errors.New("soundcloud support disabled: client ID is not set")

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "soundcloud-playlist/1.0"
)

// Client fetches SoundCloud API responses and extracts the playable tracks
// from them. A Client is safe for concurrent use: each request gets its own
// extractor, and the client ID is read-only after construction.
type Client struct {
	resolver   *Resolver
	httpClient *http.Client
	chunkSize  int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.resolver.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client used for API requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a SoundCloud client from the given configuration. If the
// configuration resolves to an empty client ID, New returns ErrDisabled and
// the caller should treat SoundCloud support as switched off rather than
// failing.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, ErrDisabled
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 4096
	}

	client := &Client{
		resolver:   NewResolver(cfg.ClientID),
		httpClient: &http.Client{Timeout: defaultTimeout},
		chunkSize:  chunkSize,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// GetPlaylist resolves a soundcloud:// URI, streams the JSON response and
// returns the extracted tracks in document order. Any resolver, transport or
// parse error aborts the whole request: a partial track list is never
// returned. Cancelling ctx aborts the in-flight fetch.
func (c *Client) GetPlaylist(ctx context.Context, uri string) (*domain.Playlist, error) {
	endpoint, err := c.resolver.Resolve(uri)
	if err != nil {
		return nil, err
	}

	slog.Info("Fetching soundcloud playlist", "uri", uri)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Transport errors embed the request URL, which carries the
		// credential; redact it before the error can reach a log line.
		return nil, fmt.Errorf("failed to fetch playlist: %s", c.redact(err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("playlist fetch failed with status: %d", resp.StatusCode)
	}

	ex := newExtractor(c.resolver.clientID)
	stream := jtree.NewStream(bufio.NewReaderSize(resp.Body, c.chunkSize))
	if err := stream.Parse(ex); err != nil {
		return nil, fmt.Errorf("failed to parse playlist response: %w", err)
	}
	if err := ex.finish(); err != nil {
		return nil, err
	}

	slog.Info("Extracted playlist", "uri", uri, "tracks", len(ex.tracks))

	return &domain.Playlist{Source: uri, Tracks: ex.tracks}, nil
}

func (c *Client) redact(s string) string {
	return strings.ReplaceAll(s, c.resolver.clientID, "***")
}

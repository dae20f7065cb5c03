package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/SuperMusic/internal/cache"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// maxAPIResponseSize bounds how much of a lookup or search response is read.
const maxAPIResponseSize = 4 << 20

// Client talks to the upstream music services: the URL lookup API, the
// QQ Music and NetEase search endpoints, and the media CDNs.
type Client interface {
	// Lookup asks the lookup API for the media URL of an already validated request.
	// Coded replies are returned as-is; only transport failures produce an error.
	Lookup(ctx context.Context, req models.DownloadRequest) (*models.LookupReply, error)

	// Search returns the raw search payload of platform for keyword.
	Search(ctx context.Context, platform models.Platform, keyword string) ([]byte, error)

	// ForgetSearch evicts the cached search payload of platform for keyword.
	ForgetSearch(ctx context.Context, platform models.Platform, keyword string)

	// OpenMedia starts a GET on a resolved media URL. The caller closes the body.
	OpenMedia(ctx context.Context, mediaURL string) (*MediaStream, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// MediaStream is an open media response.
type MediaStream struct {
	Body io.ReadCloser
	// ContentLength is the advertised size, 0 when unknown.
	ContentLength uint64
	ContentType   string
	StatusCode    int
}

type client struct {
	apiClient   *http.Client
	mediaClient *http.Client
	lookupURL   string
	apiKey      string
	qqURL       string
	neteaseURL  string
	searchLimit int
	searchCache cache.Cache
}

// NewClient creates a client from cfg. When searchCache is non-nil, search
// payloads are served from and stored into it.
func NewClient(cfg *config.Config, searchCache cache.Cache) Client {
	timeout := config.ParseDuration("client_timeout", cfg.ClientTimeout, 30*time.Second)
	baseTransport := newBaseTransport(cfg.ProxyConnectionString)

	limit := cfg.Search.Limit
	if limit <= 0 {
		limit = 10
	}

	return &client{
		apiClient: &http.Client{
			Timeout:   timeout,
			Transport: newCompressionTransport(baseTransport),
		},
		// Media transfers are long lived, so only the dial and header phases are bounded.
		mediaClient: &http.Client{
			Transport: newMediaTransport(baseTransport, timeout),
		},
		lookupURL:   orDefault(cfg.Lookup.BaseURL, config.DefaultLookupURL),
		apiKey:      cfg.Lookup.APIKey,
		qqURL:       orDefault(cfg.Search.QQURL, DefaultQQSearchURL),
		neteaseURL:  orDefault(cfg.Search.NeteaseURL, DefaultNeteaseSearchURL),
		searchLimit: limit,
		searchCache: searchCache,
	}
}

// newBaseTransport clones DefaultTransport and applies the configured proxy.
func newBaseTransport(proxy string) *http.Transport {
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy == "" {
		return baseTransport
	}

	proxyURL, err := url.Parse(proxy)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("proxy", proxy).Msg("Invalid proxy URL, continuing without proxy")
		return baseTransport
	}
	baseTransport.Proxy = http.ProxyURL(proxyURL)
	return baseTransport
}

func newMediaTransport(base *http.Transport, headerTimeout time.Duration) *http.Transport {
	t := base.Clone()
	t.ResponseHeaderTimeout = headerTimeout
	// Media is stored byte-for-byte, so transparent gzip must stay off.
	t.DisableCompression = true
	return t
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	if c.searchCache != nil {
		return c.searchCache.Close()
	}
	return nil
}

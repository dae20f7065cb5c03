package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
)

const (
	DefaultQQSearchURL      = "https://c.y.qq.com/soso/fcgi-bin/client_search_cp"
	DefaultNeteaseSearchURL = "https://music.163.com/api/search/get/"
)

// Search queries one platform's search endpoint and returns its raw payload.
// Only tx and wy have search endpoints.
func (c *client) Search(ctx context.Context, platform models.Platform, keyword string) ([]byte, error) {
	logger := config.GetLogger()

	endpoint, err := c.searchEndpoint(platform, keyword)
	if err != nil {
		return nil, err
	}

	cacheKey := searchCacheKey(platform, keyword)
	if c.searchCache != nil {
		if payload, ok := c.searchCache.Get(ctx, cacheKey); ok {
			logger.Debug().Str("platform", platform.String()).Str("keyword", keyword).Msg("Search payload served from cache")
			return payload, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	if platform == models.PlatformNetease {
		req.Header.Set("Referer", "https://music.163.com/")
	}

	resp, err := c.apiClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s search: %w", platform.DisplayName(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s search returned unexpected status code: %d", platform.DisplayName(), resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s search response: %w", platform.DisplayName(), err)
	}

	if c.searchCache != nil {
		c.searchCache.Set(ctx, cacheKey, payload)
	}

	logger.Debug().
		Str("platform", platform.String()).
		Int("bytes", len(payload)).
		Msg("Search payload received")
	return payload, nil
}

// ForgetSearch evicts a cached payload that turned out to be unusable.
func (c *client) ForgetSearch(ctx context.Context, platform models.Platform, keyword string) {
	if c.searchCache == nil {
		return
	}
	c.searchCache.Delete(ctx, searchCacheKey(platform, keyword))
	logger := config.GetLogger()
	logger.Debug().
		Str("platform", platform.String()).
		Str("keyword", keyword).
		Msg("Search payload evicted from cache")
}

func searchCacheKey(platform models.Platform, keyword string) string {
	return platform.String() + ":" + keyword
}

func (c *client) searchEndpoint(platform models.Platform, keyword string) (string, error) {
	query := url.Values{}
	var base string
	switch platform {
	case models.PlatformQQ:
		base = c.qqURL
		query.Set("w", keyword)
		query.Set("n", strconv.Itoa(c.searchLimit))
	case models.PlatformNetease:
		base = c.neteaseURL
		query.Set("s", keyword)
		query.Set("type", "1")
		query.Set("limit", strconv.Itoa(c.searchLimit))
	default:
		return "", fmt.Errorf("no search endpoint for platform %q", platform)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid %s search URL: %w", platform.DisplayName(), err)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/parser"
)

// Lookup calls GET {base}/url?source=&songId=&quality= with the X-API-Key header
func (c *client) Lookup(ctx context.Context, req models.DownloadRequest) (*models.LookupReply, error) {
	logger := config.GetLogger()

	query := url.Values{}
	query.Set("source", req.Platform.String())
	query.Set("songId", req.ExternalID)
	query.Set("quality", req.Quality.String())
	endpoint := strings.TrimRight(c.lookupURL, "/") + "/url?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to create lookup request", err)
	}
	httpReq.Header.Set("User-Agent", config.GetUserAgent())
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}

	logger.Debug().
		Str("platform", req.Platform.String()).
		Str("songID", req.ExternalID).
		Str("quality", req.Quality.String()).
		Msg("Calling lookup API")

	resp, err := c.apiClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewTransportError("lookup request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseSize))
	if err != nil {
		return nil, apperrors.NewTransportError("failed to read lookup response", err)
	}

	// The API reports failures in the body, so the HTTP status is only
	// informative unless the body cannot be decoded.
	reply, err := parser.ParseLookupReply(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("malformed lookup response (HTTP %d)", resp.StatusCode), err)
	}

	logger.Debug().Int("code", reply.Code).Int("status", resp.StatusCode).Msg("Lookup API replied")
	return reply, nil
}

package client

import (
	"context"
	"net/http"

	"github.com/Belphemur/SuperMusic/internal/config"
)

// OpenMedia issues the GET for a resolved media URL.
// Non-2xx responses are returned too: error documents are detected from the body.
func (c *client) OpenMedia(ctx context.Context, mediaURL string) (*MediaStream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := c.mediaClient.Do(req)
	if err != nil {
		return nil, err
	}

	var length uint64
	if resp.ContentLength > 0 {
		length = uint64(resp.ContentLength)
	}

	return &MediaStream{
		Body:          resp.Body,
		ContentLength: length,
		ContentType:   resp.Header.Get("Content-Type"),
		StatusCode:    resp.StatusCode,
	}, nil
}

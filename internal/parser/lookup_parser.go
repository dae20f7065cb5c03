package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// ParseLookupReply decodes the lookup API's {code, url, message} document.
// A body without a numeric code is malformed. HTML bodies (gateway error
// pages and the like) are reported with their title.
func ParseLookupReply(body []byte, contentType string) (*models.LookupReply, error) {
	logger := config.GetLogger()

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty lookup response")
	}
	if trimmed[0] == '<' || strings.Contains(contentType, "html") {
		title := describeHTML(trimmed, contentType)
		logger.Debug().Str("title", title).Msg("Lookup API answered with an HTML page")
		return nil, fmt.Errorf("unexpected HTML lookup response: %s", title)
	}

	var reply models.LookupReply
	if err := json.Unmarshal(trimmed, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if code := gjson.GetBytes(trimmed, "code"); code.Type != gjson.Number {
		return nil, fmt.Errorf("lookup response has no numeric code: %s", snippet(trimmed))
	}
	return &reply, nil
}

// describeHTML returns the page title, or a short text excerpt when there is none.
func describeHTML(body []byte, contentType string) string {
	reader, err := NewUTF8Reader(bytes.NewReader(body), contentType)
	if err != nil {
		return snippet(body)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return snippet(body)
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if text == "" {
		return snippet(body)
	}
	return snippet([]byte(text))
}

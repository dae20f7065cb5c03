package parser

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// QQTrackParser normalizes QQ Music search payloads.
//
// The endpoint answers with JSONP (callback({...})) whose records live under
// data.song.list; each record carries songmid, songname, albumname and a
// singer list.
type QQTrackParser struct{}

// NewQQTrackParser creates a parser for QQ Music (tx) search payloads
func NewQQTrackParser() TrackParser {
	return &QQTrackParser{}
}

func (p *QQTrackParser) Platform() models.Platform {
	return models.PlatformQQ
}

// ParseTracks unwraps the JSONP envelope and normalizes data.song.list
func (p *QQTrackParser) ParseTracks(payload []byte) ([]models.TrackRecord, error) {
	logger := config.GetLogger()

	body := UnwrapJSONP(payload)
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid QQ Music search response: %s", snippet(body))
	}

	tracks := make([]models.TrackRecord, 0)
	list := gjson.GetBytes(body, "data.song.list")
	if !list.IsArray() {
		logger.Debug().Msg("QQ Music response has no data.song.list, returning empty result")
		return tracks, nil
	}

	list.ForEach(func(_, item gjson.Result) bool {
		tracks = append(tracks, models.TrackRecord{
			Title:          item.Get("songname").String(),
			Artist:         firstName(item.Get("singer")),
			Album:          item.Get("albumname").String(),
			SourcePlatform: models.PlatformQQ,
			ExternalID:     item.Get("songmid").String(),
		})
		return true
	})

	logger.Debug().Int("count", len(tracks)).Msg("Parsed QQ Music search results")
	return tracks, nil
}

// UnwrapJSONP strips a JSONP envelope such as callback({...}) and returns the
// inner JSON. Plain JSON payloads are returned unchanged.
func UnwrapJSONP(payload []byte) []byte {
	body := bytes.TrimSpace(payload)
	if len(body) == 0 || body[0] == '{' || body[0] == '[' {
		return body
	}
	open := bytes.IndexByte(body, '(')
	end := bytes.LastIndexByte(body, ')')
	if open < 0 || end <= open {
		return body
	}
	return bytes.TrimSpace(body[open+1 : end])
}

// firstName returns the name of the first entry of a singer/artist list, or "".
func firstName(list gjson.Result) string {
	if !list.IsArray() {
		return ""
	}
	entries := list.Array()
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Get("name").String()
}

func snippet(body []byte) string {
	const max = 120
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

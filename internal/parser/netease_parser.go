package parser

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// NeteaseTrackParser normalizes NetEase Cloud Music search payloads.
//
// Records live under result.songs with a numeric id. The legacy API uses
// artists/album while the newer one uses ar/al, so both spellings are read.
type NeteaseTrackParser struct{}

// NewNeteaseTrackParser creates a parser for NetEase (wy) search payloads
func NewNeteaseTrackParser() TrackParser {
	return &NeteaseTrackParser{}
}

func (p *NeteaseTrackParser) Platform() models.Platform {
	return models.PlatformNetease
}

// ParseTracks normalizes result.songs; a missing result object yields an empty list
func (p *NeteaseTrackParser) ParseTracks(payload []byte) ([]models.TrackRecord, error) {
	logger := config.GetLogger()

	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("invalid NetEase search response: %s", snippet(payload))
	}

	tracks := make([]models.TrackRecord, 0)
	songs := gjson.GetBytes(payload, "result.songs")
	if !songs.IsArray() {
		logger.Debug().
			Int64("code", gjson.GetBytes(payload, "code").Int()).
			Msg("NetEase response has no result.songs, returning empty result")
		return tracks, nil
	}

	songs.ForEach(func(_, song gjson.Result) bool {
		artists := song.Get("artists")
		if !artists.Exists() {
			artists = song.Get("ar")
		}
		album := song.Get("album")
		if !album.Exists() {
			album = song.Get("al")
		}

		tracks = append(tracks, models.TrackRecord{
			Title:          song.Get("name").String(),
			Artist:         firstName(artists),
			Album:          album.Get("name").String(),
			SourcePlatform: models.PlatformNetease,
			// gjson keeps integer ids verbatim, so large ids are not rounded
			ExternalID: song.Get("id").String(),
		})
		return true
	})

	logger.Debug().Int("count", len(tracks)).Msg("Parsed NetEase search results")
	return tracks, nil
}

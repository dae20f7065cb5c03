package services

import (
	"path/filepath"
	"strings"

	id3v2 "github.com/bogem/id3v2/v2"

	"github.com/Belphemur/SuperMusic/internal/models"
)

// Tagger writes track metadata into a downloaded file
type Tagger interface {
	// Tag embeds track into the file at path. Formats it cannot tag are skipped.
	Tag(path string, track models.TrackRecord) error
}

// ID3Tagger embeds ID3v2 title, artist and album frames into mp3 files
type ID3Tagger struct{}

// NewID3Tagger creates a tagger for mp3 downloads
func NewID3Tagger() Tagger {
	return &ID3Tagger{}
}

func (t *ID3Tagger) Tag(path string, track models.TrackRecord) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if track.Title != "" {
		tag.SetTitle(track.Title)
	}
	if track.Artist != "" {
		tag.SetArtist(track.Artist)
	}
	if track.Album != "" {
		tag.SetAlbum(track.Album)
	}
	return tag.Save()
}

package parser

import "github.com/Belphemur/SuperMusic/internal/models"

// TrackParser normalizes a platform's raw search payload into TrackRecords.
// Implementations preserve the service order and never return nil on success.
type TrackParser interface {
	Platform() models.Platform
	ParseTracks(payload []byte) ([]models.TrackRecord, error)
}

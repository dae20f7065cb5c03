package models

// TrackRef identifies a resolvable track on a platform.
// ExternalID is opaque per-platform text.
type TrackRef struct {
	Platform   Platform `json:"platform"`
	ExternalID string   `json:"external_id"`
}

// TrackRecord is a normalized search hit
type TrackRecord struct {
	Title          string   `json:"title"`
	Artist         string   `json:"artist"`
	Album          string   `json:"album"`
	SourcePlatform Platform `json:"source_platform"`
	ExternalID     string   `json:"external_id"`
}

// Ref returns the TrackRef that resolves this record
func (t TrackRecord) Ref() TrackRef {
	return TrackRef{Platform: t.SourcePlatform, ExternalID: t.ExternalID}
}

package models

// DownloadRequest represents a request to resolve a track at a given quality
type DownloadRequest struct {
	TrackRef
	Quality Quality `json:"quality"`
}

// NewDownloadRequest builds a DownloadRequest from raw caller input.
// Values are kept verbatim so validation can report exactly what was sent.
func NewDownloadRequest(platform, externalID, quality string) DownloadRequest {
	return DownloadRequest{
		TrackRef: TrackRef{
			Platform:   Platform(platform),
			ExternalID: externalID,
		},
		Quality: Quality(quality),
	}
}

// ResolvedTarget holds the download URL produced by the resolver
type ResolvedTarget struct {
	URL string `json:"url"`
}

// LookupReply is the raw reply of the upstream lookup API
type LookupReply struct {
	Code    int    `json:"code"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// DownloadResult describes a finished download on disk
type DownloadResult struct {
	Path     string           `json:"path"`
	Request  DownloadRequest  `json:"request"`
	Progress TransferProgress `json:"progress"`
}

// FetchResult describes the outcome of a search-then-download run
type FetchResult struct {
	Track   TrackRecord `json:"track"`
	Quality Quality     `json:"quality"`
	Path    string      `json:"path"`
}

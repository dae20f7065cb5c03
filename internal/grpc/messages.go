package grpc

// Track is a search hit as sent over the wire.
type Track struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
}

type ResolveRequest struct {
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
	Quality    string `json:"quality"`
}

type ResolveResponse struct {
	URL       string `json:"url"`
	Extension string `json:"extension"`
}

type SearchRequest struct {
	Keyword string `json:"keyword"`
	// Platform is tx, wy or auto. Empty means auto.
	Platform string `json:"platform"`
}

type SearchResponse struct {
	Tracks []*Track `json:"tracks"`
}

type ExtensionRequest struct {
	Quality string `json:"quality"`
}

type ExtensionResponse struct {
	Extension string `json:"extension"`
}

// DownloadRequest saves one track into the server's output directory.
// Title, Artist and Album are optional tag metadata.
type DownloadRequest struct {
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
	Quality    string `json:"quality"`
	Title      string `json:"title,omitempty"`
	Artist     string `json:"artist,omitempty"`
	Album      string `json:"album,omitempty"`
}

// FetchRequest searches for keyword and saves the first hit that downloads.
type FetchRequest struct {
	Keyword  string `json:"keyword"`
	Platform string `json:"platform"`
	Quality  string `json:"quality"`
}

// ProgressEvent is streamed by Download and Fetch. The last event of a
// successful call has Done set and carries the saved path.
type ProgressEvent struct {
	TransferID       string  `json:"transfer_id"`
	BytesTransferred uint64  `json:"bytes_transferred"`
	TotalBytes       uint64  `json:"total_bytes"`
	Percent          float64 `json:"percent"`
	Done             bool    `json:"done"`
	Path             string  `json:"path,omitempty"`
	Quality          string  `json:"quality,omitempty"`
	Track            *Track  `json:"track,omitempty"`
}

package models

// TransferProgress is emitted repeatedly while a transfer runs.
// TotalBytes is 0 when the upstream did not advertise a length.
type TransferProgress struct {
	BytesTransferred uint64 `json:"bytes_transferred"`
	TotalBytes       uint64 `json:"total_bytes"`
}

// Percent returns the completion percentage, or -1 when the total is unknown
func (p TransferProgress) Percent() float64 {
	if p.TotalBytes == 0 {
		return -1
	}
	return float64(p.BytesTransferred) / float64(p.TotalBytes) * 100
}

// TransferOutcome is the terminal state of one transfer
type TransferOutcome string

const (
	TransferSuccess        TransferOutcome = "success"
	TransferAPIRejected    TransferOutcome = "api_rejected"
	TransferNetworkFailure TransferOutcome = "network_failure"
	TransferIOFailure      TransferOutcome = "io_failure"
)

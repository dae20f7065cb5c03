package services

import (
	"context"
	"io"
	"os"

	"github.com/Belphemur/SuperMusic/internal/client"
	"github.com/Belphemur/SuperMusic/internal/models"
)

const (
	// sniffSize is how many leading bytes are inspected for an error document.
	sniffSize = 1024
	// chunkSize is the read size of the streaming loop.
	chunkSize = 8 * 1024
	// maxErrorBodySize bounds how much of an error document is drained.
	maxErrorBodySize = 1 << 20
)

// ProgressFunc receives transfer progress. A nil ProgressFunc is a no-op.
type ProgressFunc func(models.TransferProgress)

// SinkFactory creates the destination lazily, once the body is known to be media.
type SinkFactory func() (io.WriteCloser, error)

// MediaSource opens resolved media URLs.
type MediaSource interface {
	OpenMedia(ctx context.Context, mediaURL string) (*client.MediaStream, error)
}

// TransferEngine streams a media URL into a sink
type TransferEngine interface {
	// Transfer fetches mediaURL and writes it to the sink created by newSink.
	// Bodies that start with a JSON document fail with *apperrors.APIRejectedError
	// and the sink is never created. A non-2xx status with any other body fails
	// with *apperrors.NetworkError before the sink is created.
	// The final progress is returned on success.
	Transfer(ctx context.Context, mediaURL string, newSink SinkFactory, onProgress ProgressFunc) (models.TransferProgress, error)
}

// FileSink creates (or truncates) the file at path.
func FileSink(path string) SinkFactory {
	return func() (io.WriteCloser, error) {
		return os.Create(path)
	}
}

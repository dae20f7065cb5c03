package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/client"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/metrics"
	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/parser"
)

// DefaultTransferEngine implements TransferEngine over a MediaSource
type DefaultTransferEngine struct {
	source MediaSource
}

// NewTransferEngine creates a transfer engine reading from source
func NewTransferEngine(source MediaSource) TransferEngine {
	return &DefaultTransferEngine{source: source}
}

// Transfer sniffs the first KiB, then streams the body in 8 KiB chunks
func (e *DefaultTransferEngine) Transfer(ctx context.Context, mediaURL string, newSink SinkFactory, onProgress ProgressFunc) (models.TransferProgress, error) {
	logger := config.GetLogger().With().Str("transferID", uuid.NewString()).Logger()
	if onProgress == nil {
		onProgress = func(models.TransferProgress) {}
	}

	metrics.ActiveTransfers.Inc()
	defer metrics.ActiveTransfers.Dec()

	logger.Info().Str("url", mediaURL).Msg("Starting media transfer")

	stream, err := e.source.OpenMedia(ctx, mediaURL)
	if err != nil {
		return e.fail(logger, models.TransferProgress{}, &apperrors.NetworkError{Err: err})
	}
	defer stream.Body.Close()

	progress := models.TransferProgress{TotalBytes: stream.ContentLength}

	head := make([]byte, sniffSize)
	n, readErr := io.ReadFull(stream.Body, head)
	head = head[:n]
	finished := false
	switch {
	case readErr == nil:
	case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
		finished = true
	case progress.TotalBytes > 0 && uint64(n) == progress.TotalBytes:
		finished = true
	default:
		return e.fail(logger, progress, &apperrors.NetworkError{Err: readErr})
	}

	if parser.LooksLikeJSON(head) {
		return e.fail(logger, progress, rejection(stream, head, finished))
	}
	if stream.StatusCode < 200 || stream.StatusCode > 299 {
		return e.fail(logger, progress, &apperrors.NetworkError{
			Err: fmt.Errorf("unexpected status code: %d", stream.StatusCode),
		})
	}

	sink, err := newSink()
	if err != nil {
		return e.fail(logger, progress, &apperrors.IOError{Op: "create sink", Err: err})
	}

	progress, err = e.stream(ctx, stream.Body, sink, head, finished, progress, onProgress)
	if closeErr := sink.Close(); closeErr != nil && err == nil {
		err = &apperrors.IOError{Op: "close sink", Err: closeErr}
	}
	if err != nil {
		return e.fail(logger, progress, err)
	}

	metrics.TransfersTotal.WithLabelValues(string(models.TransferSuccess)).Inc()
	logger.Info().
		Uint64("bytes", progress.BytesTransferred).
		Uint64("total", progress.TotalBytes).
		Msg("Media transfer completed")
	return progress, nil
}

// stream writes the sniffed head, reports the first progress event and
// copies the rest of the body chunk by chunk.
func (e *DefaultTransferEngine) stream(ctx context.Context, body io.Reader, sink io.Writer, head []byte, finished bool, progress models.TransferProgress, onProgress ProgressFunc) (models.TransferProgress, error) {
	if err := writeChunk(sink, head, &progress); err != nil {
		return progress, err
	}
	onProgress(progress)
	if finished {
		return progress, nil
	}

	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return progress, &apperrors.NetworkError{Err: err}
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if err := writeChunk(sink, buf[:n], &progress); err != nil {
				return progress, err
			}
			onProgress(progress)
		}

		if readErr == nil {
			continue
		}
		if errors.Is(readErr, io.EOF) {
			return progress, nil
		}
		// A transport error after the advertised length was fully delivered is benign.
		if progress.TotalBytes > 0 && progress.BytesTransferred == progress.TotalBytes {
			return progress, nil
		}
		return progress, &apperrors.NetworkError{Err: readErr}
	}
}

func writeChunk(sink io.Writer, chunk []byte, progress *models.TransferProgress) error {
	if len(chunk) == 0 {
		return nil
	}
	if _, err := sink.Write(chunk); err != nil {
		return &apperrors.IOError{Op: "write to sink", Err: err}
	}
	progress.BytesTransferred += uint64(len(chunk))
	metrics.TransferBytesTotal.Add(float64(len(chunk)))
	return nil
}

// rejection drains the rest of an error document and builds the failure.
// Read errors while draining end the drain, they never mask the rejection.
func rejection(stream *client.MediaStream, head []byte, finished bool) *apperrors.APIRejectedError {
	body := bytes.NewBuffer(append([]byte(nil), head...))
	if !finished {
		_, _ = io.Copy(body, io.LimitReader(stream.Body, maxErrorBodySize-int64(len(head))))
	}

	text := parser.DecodeErrorText(body.Bytes(), stream.ContentType)
	code, message := parser.ProbeRejection(text)
	return &apperrors.APIRejectedError{Body: text, Code: code, Message: message}
}

func (e *DefaultTransferEngine) fail(logger zerolog.Logger, progress models.TransferProgress, err error) (models.TransferProgress, error) {
	outcome := OutcomeOf(err)
	metrics.TransfersTotal.WithLabelValues(string(outcome)).Inc()
	logger.Warn().
		Err(err).
		Str("outcome", string(outcome)).
		Uint64("bytes", progress.BytesTransferred).
		Msg("Media transfer failed")
	return progress, err
}

// OutcomeOf classifies a transfer error. A nil error is a success.
func OutcomeOf(err error) models.TransferOutcome {
	switch {
	case err == nil:
		return models.TransferSuccess
	case errors.Is(err, &apperrors.APIRejectedError{}):
		return models.TransferAPIRejected
	case errors.Is(err, &apperrors.IOError{}):
		return models.TransferIOFailure
	default:
		return models.TransferNetworkFailure
	}
}

package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/services"
)

// progressStep is the minimum number of bytes between two streamed progress events.
const progressStep = 256 << 10

// Services bundles the components MusicService delegates to.
type Services struct {
	Resolver   services.Resolver
	Search     services.SearchAggregator
	Downloader services.MusicDownloader
	Fetcher    services.Fetcher
}

// Options configures server-side behaviour of MusicService.
type Options struct {
	// OutputDir receives files saved by Download and Fetch.
	OutputDir string
	// RequestTimeout bounds Resolve and Search. Zero disables it.
	RequestTimeout time.Duration
}

// server implements the MusicServiceServer interface
type server struct {
	svc    Services
	opts   Options
	logger zerolog.Logger
}

// NewServer creates a new MusicService implementation
func NewServer(svc Services, opts Options) MusicServiceServer {
	return &server{
		svc:    svc,
		opts:   opts,
		logger: config.GetLogger(),
	}
}

// Resolve implements MusicServiceServer.Resolve
func (s *server) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	s.logger.Debug().
		Str("platform", req.Platform).
		Str("external_id", req.ExternalID).
		Str("quality", req.Quality).
		Msg("Resolve called")

	downloadReq := models.NewDownloadRequest(req.Platform, req.ExternalID, req.Quality)
	target, err := runWithTimeout(ctx, s.opts.RequestTimeout, func(ctx context.Context) (*models.ResolvedTarget, error) {
		return s.svc.Resolver.Resolve(ctx, downloadReq)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("platform", req.Platform).Msg("Failed to resolve track")
		return nil, toStatus(err)
	}

	return &ResolveResponse{URL: target.URL, Extension: downloadReq.Quality.Extension()}, nil
}

// Search implements MusicServiceServer.Search
func (s *server) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	s.logger.Debug().Str("keyword", req.Keyword).Str("platform", req.Platform).Msg("Search called")

	tracks, err := runWithTimeout(ctx, s.opts.RequestTimeout, func(ctx context.Context) ([]models.TrackRecord, error) {
		return s.svc.Search.Search(ctx, req.Keyword, searchSelector(req.Platform))
	})
	if err != nil {
		s.logger.Error().Err(err).Str("keyword", req.Keyword).Msg("Failed to search")
		return nil, toStatus(err)
	}

	messages := make([]*Track, len(tracks))
	for i, track := range tracks {
		messages[i] = convertTrackToMessage(track)
	}

	s.logger.Debug().Int("count", len(messages)).Msg("Search completed")
	return &SearchResponse{Tracks: messages}, nil
}

// Extension implements MusicServiceServer.Extension
func (s *server) Extension(_ context.Context, req *ExtensionRequest) (*ExtensionResponse, error) {
	return &ExtensionResponse{Extension: models.Quality(req.Quality).Extension()}, nil
}

// Download implements MusicServiceServer.Download
func (s *server) Download(req *DownloadRequest, stream grpc.ServerStreamingServer[ProgressEvent]) error {
	transferID := uuid.NewString()
	logger := s.logger.With().
		Str("transfer_id", transferID).
		Str("platform", req.Platform).
		Str("external_id", req.ExternalID).
		Logger()
	logger.Debug().Str("quality", req.Quality).Msg("Download called")

	downloadReq, metadata := convertDownloadRequestFromMessage(req)
	reporter := newProgressReporter(stream, transferID, logger)

	result, err := s.svc.Downloader.DownloadToDir(stream.Context(), downloadReq, s.opts.OutputDir, services.DownloadOptions{
		Metadata:   metadata,
		OnProgress: reporter.report,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to download track")
		return toStatus(err)
	}

	final := convertProgressToMessage(transferID, result.Progress)
	final.Done = true
	final.Path = result.Path
	final.Quality = downloadReq.Quality.String()

	logger.Debug().Str("path", result.Path).Msg("Download completed")
	return stream.Send(final)
}

// Fetch implements MusicServiceServer.Fetch
func (s *server) Fetch(req *FetchRequest, stream grpc.ServerStreamingServer[ProgressEvent]) error {
	transferID := uuid.NewString()
	logger := s.logger.With().
		Str("transfer_id", transferID).
		Str("keyword", req.Keyword).
		Logger()
	logger.Debug().Str("platform", req.Platform).Str("quality", req.Quality).Msg("Fetch called")

	reporter := newProgressReporter(stream, transferID, logger)
	result, err := s.svc.Fetcher.Fetch(stream.Context(), req.Keyword, searchSelector(req.Platform),
		models.Quality(req.Quality), s.opts.OutputDir, reporter.report)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch track")
		return toStatus(err)
	}

	final := convertProgressToMessage(transferID, reporter.last)
	final.Done = true
	final.Path = result.Path
	final.Quality = result.Quality.String()
	final.Track = convertTrackToMessage(result.Track)

	logger.Debug().Str("path", result.Path).Str("quality", result.Quality.String()).Msg("Fetch completed")
	return stream.Send(final)
}

// progressReporter forwards transfer progress to a stream, at most one event per progressStep bytes.
type progressReporter struct {
	stream     grpc.ServerStreamingServer[ProgressEvent]
	transferID string
	logger     zerolog.Logger
	last       models.TransferProgress
	sent       uint64
	started    bool
}

func newProgressReporter(stream grpc.ServerStreamingServer[ProgressEvent], transferID string, logger zerolog.Logger) *progressReporter {
	return &progressReporter{stream: stream, transferID: transferID, logger: logger}
}

func (r *progressReporter) report(p models.TransferProgress) {
	// Fetch may restart a transfer for the next attempt.
	if p.BytesTransferred < r.last.BytesTransferred {
		r.started = false
	}
	r.last = p

	if r.started && p.BytesTransferred-r.sent < progressStep {
		return
	}
	r.started = true
	r.sent = p.BytesTransferred

	if err := r.stream.Send(convertProgressToMessage(r.transferID, p)); err != nil {
		r.logger.Debug().Err(err).Msg("Failed to send progress event")
	}
}

// runWithTimeout runs fn under a failsafe timeout policy when d is positive.
func runWithTimeout[R any](ctx context.Context, d time.Duration, fn func(context.Context) (R, error)) (R, error) {
	if d <= 0 {
		return fn(ctx)
	}
	return failsafe.With[R](timeout.New[R](d)).
		WithContext(ctx).
		GetWithExecution(func(exec failsafe.Execution[R]) (R, error) {
			return fn(exec.Context())
		})
}

// toStatus converts err, treating an exceeded request timeout as DeadlineExceeded.
func toStatus(err error) error {
	if errors.Is(err, timeout.ErrExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return convertErrorToStatus(err)
}

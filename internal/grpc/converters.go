package grpc

import (
	"context"
	"errors"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/services"
)

// errorDomain tags ErrorInfo details produced by this service.
const errorDomain = "music.v1"

// convertTrackToMessage converts a models.TrackRecord to its wire form
func convertTrackToMessage(track models.TrackRecord) *Track {
	return &Track{
		Title:      track.Title,
		Artist:     track.Artist,
		Album:      track.Album,
		Platform:   track.SourcePlatform.String(),
		ExternalID: track.ExternalID,
	}
}

// convertDownloadRequestFromMessage builds the download request and optional tag metadata
func convertDownloadRequestFromMessage(req *DownloadRequest) (models.DownloadRequest, *models.TrackRecord) {
	downloadReq := models.NewDownloadRequest(req.Platform, req.ExternalID, req.Quality)
	if req.Title == "" && req.Artist == "" && req.Album == "" {
		return downloadReq, nil
	}
	return downloadReq, &models.TrackRecord{
		Title:          req.Title,
		Artist:         req.Artist,
		Album:          req.Album,
		SourcePlatform: downloadReq.Platform,
		ExternalID:     downloadReq.ExternalID,
	}
}

// convertProgressToMessage converts transfer progress into a stream event
func convertProgressToMessage(transferID string, p models.TransferProgress) *ProgressEvent {
	return &ProgressEvent{
		TransferID:       transferID,
		BytesTransferred: p.BytesTransferred,
		TotalBytes:       p.TotalBytes,
		Percent:          p.Percent(),
	}
}

// searchSelector maps the wire platform to a search selector, defaulting to auto
func searchSelector(platform string) models.Platform {
	if platform == "" {
		return models.PlatformAuto
	}
	return models.Platform(platform)
}

// convertErrorToStatus maps service errors onto gRPC status codes with
// errdetails attached where the caller can act on them.
func convertErrorToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var (
		validationErr *apperrors.ValidationError
		upstreamErr   *apperrors.UpstreamError
		rejectedErr   *apperrors.APIRejectedError
		transportErr  *apperrors.TransportError
		networkErr    *apperrors.NetworkError
		ioErr         *apperrors.IOError
	)

	switch {
	case errors.As(err, &validationErr):
		return withDetails(codes.InvalidArgument, err.Error(), &errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{{
				Field:       validationErr.Field,
				Description: err.Error(),
				Reason:      validationErr.Kind.String(),
			}},
		})
	case errors.As(err, &upstreamErr):
		code := codes.Unknown
		switch upstreamErr.Kind {
		case apperrors.KindAccessDenied:
			code = codes.PermissionDenied
		case apperrors.KindRateLimited:
			code = codes.ResourceExhausted
		case apperrors.KindServerError:
			code = codes.Unavailable
		}
		return withDetails(code, err.Error(), &errdetails.ErrorInfo{
			Reason:   upstreamErr.Kind.String(),
			Domain:   errorDomain,
			Metadata: map[string]string{"code": strconv.Itoa(upstreamErr.Code)},
		})
	case errors.As(err, &rejectedErr):
		return withDetails(codes.FailedPrecondition, err.Error(), &errdetails.ErrorInfo{
			Reason: "API_REJECTED",
			Domain: errorDomain,
			Metadata: map[string]string{
				"code":    strconv.Itoa(rejectedErr.Code),
				"message": rejectedErr.Message,
			},
		})
	case errors.Is(err, services.ErrNoSearchResults):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.As(err, &transportErr), errors.As(err, &networkErr):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &ioErr):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

func withDetails(code codes.Code, msg string, details ...protoadapt.MessageV1) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(details...)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

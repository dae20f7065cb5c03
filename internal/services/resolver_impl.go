package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/matrix"
	"github.com/Belphemur/SuperMusic/internal/metrics"
	"github.com/Belphemur/SuperMusic/internal/models"
)

const (
	defaultAccessDeniedMessage = "permission denied or API key is invalid"
	defaultRateLimitedMessage  = "too many requests, please retry later"
	defaultServerErrorMessage  = "upstream API error"
)

// DefaultResolver implements Resolver on top of a Lookup collaborator
type DefaultResolver struct {
	lookup Lookup
}

// NewResolver creates a resolver that queries lookup
func NewResolver(lookup Lookup) Resolver {
	return &DefaultResolver{lookup: lookup}
}

// ValidateDownloadRequest runs the local checks in order: platform,
// identifier, quality, then quality against the platform's own set.
// The first failing check decides the error.
func ValidateDownloadRequest(req models.DownloadRequest) error {
	if !matrix.IsPlatform(req.Platform) {
		return apperrors.NewUnsupportedPlatformError(req.Platform.String(), matrix.Strings(matrix.Platforms()))
	}
	if strings.TrimSpace(req.ExternalID) == "" {
		return apperrors.NewEmptyIdentifierError()
	}
	if !matrix.IsQuality(req.Quality) {
		return apperrors.NewUnsupportedQualityError(req.Quality.String(), matrix.Strings(matrix.Qualities()))
	}
	if !matrix.Supports(req.Platform, req.Quality) {
		return apperrors.NewQualityNotSupportedError(
			req.Platform.String(),
			req.Quality.String(),
			matrix.Strings(matrix.QualitiesFor(req.Platform)),
		)
	}
	return nil
}

// Resolve validates req, calls the lookup API once and maps its reply
func (r *DefaultResolver) Resolve(ctx context.Context, req models.DownloadRequest) (*models.ResolvedTarget, error) {
	logger := config.GetLogger()

	if err := ValidateDownloadRequest(req); err != nil {
		recordResolve(req.Platform, "invalid")
		logger.Debug().Err(err).Msg("Rejected download request")
		return nil, err
	}

	logger.Info().
		Str("platform", req.Platform.String()).
		Str("songID", req.ExternalID).
		Str("quality", req.Quality.String()).
		Msg("Resolving track URL")

	reply, err := r.lookup.Lookup(ctx, req)
	if err != nil {
		recordResolve(req.Platform, "transport_error")
		var transportErr *apperrors.TransportError
		if errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, apperrors.NewTransportError("lookup request failed", err)
	}

	target, err := mapLookupReply(reply)
	if err != nil {
		recordResolve(req.Platform, resolveResult(err))
		logger.Warn().
			Err(err).
			Str("platform", req.Platform.String()).
			Int("code", reply.Code).
			Msg("Lookup API refused the request")
		return nil, err
	}

	recordResolve(req.Platform, "success")
	logger.Info().Str("platform", req.Platform.String()).Msg("Track URL resolved")
	return target, nil
}

// mapLookupReply converts a coded reply into a target or a typed failure.
// Upstream messages win over the built-in defaults.
func mapLookupReply(reply *models.LookupReply) (*models.ResolvedTarget, error) {
	switch reply.Code {
	case 200:
		if reply.URL == "" {
			return nil, apperrors.NewTransportError("malformed lookup response", errors.New("success reply carries no URL"))
		}
		return &models.ResolvedTarget{URL: reply.URL}, nil
	case 403:
		return nil, &apperrors.UpstreamError{
			Kind:    apperrors.KindAccessDenied,
			Code:    reply.Code,
			Message: messageOr(reply.Message, defaultAccessDeniedMessage),
		}
	case 429:
		return nil, &apperrors.UpstreamError{
			Kind:    apperrors.KindRateLimited,
			Code:    reply.Code,
			Message: messageOr(reply.Message, defaultRateLimitedMessage),
		}
	case 500:
		return nil, &apperrors.UpstreamError{
			Kind:    apperrors.KindServerError,
			Code:    reply.Code,
			Message: messageOr(reply.Message, defaultServerErrorMessage),
		}
	default:
		return nil, &apperrors.UpstreamError{
			Kind:    apperrors.KindOtherCode,
			Code:    reply.Code,
			Message: messageOr(reply.Message, fmt.Sprintf("%s: %d", defaultServerErrorMessage, reply.Code)),
		}
	}
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func resolveResult(err error) string {
	var upstream *apperrors.UpstreamError
	if errors.As(err, &upstream) {
		return strings.ToLower(upstream.Kind.String())
	}
	return "transport_error"
}

// recordResolve counts a resolution; unknown platforms share one label value.
func recordResolve(platform models.Platform, result string) {
	label := platform.String()
	if !matrix.IsPlatform(platform) {
		label = "unknown"
	}
	metrics.ResolvesTotal.WithLabelValues(label, result).Inc()
}

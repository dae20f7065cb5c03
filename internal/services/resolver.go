package services

import (
	"context"

	"github.com/Belphemur/SuperMusic/internal/models"
)

// Lookup is the upstream URL lookup collaborator.
type Lookup interface {
	Lookup(ctx context.Context, req models.DownloadRequest) (*models.LookupReply, error)
}

// Resolver turns a (platform, track id, quality) request into a media URL
type Resolver interface {
	// Resolve validates req and performs exactly one lookup call.
	// It fails with *apperrors.ValidationError before any network call,
	// *apperrors.UpstreamError for coded replies and *apperrors.TransportError otherwise.
	Resolve(ctx context.Context, req models.DownloadRequest) (*models.ResolvedTarget, error)
}

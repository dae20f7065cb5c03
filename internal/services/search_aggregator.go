package services

import (
	"context"

	"github.com/Belphemur/SuperMusic/internal/models"
)

// SearchSource returns raw search payloads for a concrete platform.
type SearchSource interface {
	Search(ctx context.Context, platform models.Platform, keyword string) ([]byte, error)
	// ForgetSearch drops any stored payload for platform and keyword.
	ForgetSearch(ctx context.Context, platform models.Platform, keyword string)
}

// SearchAggregator finds tracks on tx, wy, or automatically across both
type SearchAggregator interface {
	// Search validates the keyword and selector, then queries one platform,
	// or for auto queries tx and falls back to wy once when tx fails or is empty.
	Search(ctx context.Context, keyword string, selector models.Platform) ([]models.TrackRecord, error)
}

// SearchPlatforms lists the accepted search selectors
var SearchPlatforms = []models.Platform{models.PlatformQQ, models.PlatformNetease, models.PlatformAuto}

// autoPriority is the order used by the auto selector
var autoPriority = []models.Platform{models.PlatformQQ, models.PlatformNetease}

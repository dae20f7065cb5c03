package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/matrix"
	"github.com/Belphemur/SuperMusic/internal/metrics"
	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/parser"
)

// DefaultSearchAggregator implements SearchAggregator with one parser per platform
type DefaultSearchAggregator struct {
	source  SearchSource
	parsers map[models.Platform]parser.TrackParser
}

// NewSearchAggregator creates an aggregator over source
func NewSearchAggregator(source SearchSource) SearchAggregator {
	parsers := lo.SliceToMap(
		[]parser.TrackParser{parser.NewQQTrackParser(), parser.NewNeteaseTrackParser()},
		func(p parser.TrackParser) (models.Platform, parser.TrackParser) { return p.Platform(), p },
	)
	return &DefaultSearchAggregator{source: source, parsers: parsers}
}

// ValidateSearch checks the keyword first, then the selector.
func ValidateSearch(keyword string, selector models.Platform) error {
	if strings.TrimSpace(keyword) == "" {
		return apperrors.NewEmptyKeywordError()
	}
	if !lo.Contains(SearchPlatforms, selector) {
		return apperrors.NewUnsupportedSearchPlatformError(selector.String(), matrix.Strings(SearchPlatforms))
	}
	return nil
}

// Search runs the query described by selector
func (a *DefaultSearchAggregator) Search(ctx context.Context, keyword string, selector models.Platform) ([]models.TrackRecord, error) {
	logger := config.GetLogger()

	if err := ValidateSearch(keyword, selector); err != nil {
		return nil, err
	}
	keyword = strings.TrimSpace(keyword)

	if selector != models.PlatformAuto {
		return a.searchPlatform(ctx, selector, keyword)
	}

	primary, fallback := autoPriority[0], autoPriority[1]
	tracks, err := a.searchPlatform(ctx, primary, keyword)
	if err == nil && len(tracks) > 0 {
		return tracks, nil
	}

	metrics.SearchFallbacksTotal.Inc()
	event := logger.Info()
	if err != nil {
		event = logger.Warn().Err(err)
	}
	event.
		Str("keyword", keyword).
		Str("from", primary.String()).
		Str("to", fallback.String()).
		Msg("Falling back to secondary search platform")

	return a.searchPlatform(ctx, fallback, keyword)
}

func (a *DefaultSearchAggregator) searchPlatform(ctx context.Context, platform models.Platform, keyword string) ([]models.TrackRecord, error) {
	logger := config.GetLogger()

	payload, err := a.source.Search(ctx, platform, keyword)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(platform.String(), "error").Inc()
		return nil, apperrors.NewTransportError(fmt.Sprintf("%s search failed", platform.DisplayName()), err)
	}

	tracks, err := a.parsers[platform].ParseTracks(payload)
	if err != nil {
		a.source.ForgetSearch(ctx, platform, keyword)
		metrics.SearchesTotal.WithLabelValues(platform.String(), "error").Inc()
		return nil, apperrors.NewTransportError(fmt.Sprintf("malformed %s search response", platform.DisplayName()), err)
	}

	result := "success"
	if len(tracks) == 0 {
		result = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(platform.String(), result).Inc()

	logger.Info().
		Str("platform", platform.String()).
		Str("keyword", keyword).
		Int("count", len(tracks)).
		Msg("Search completed")
	return tracks, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/matrix"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// DefaultFetchHits is how many search hits Fetch tries before giving up
const DefaultFetchHits = 5

// ErrNoSearchResults is returned by Fetch when the search finds nothing.
var ErrNoSearchResults = errors.New("search returned no results")

// Fetcher searches for a keyword and downloads the first hit that succeeds
type Fetcher interface {
	// Fetch walks the top hits and, for each, the qualities from target down to
	// 128k that the hit's platform serves, saving "<title>-<artist>.<ext>" in dir.
	Fetch(ctx context.Context, keyword string, selector models.Platform, target models.Quality, dir string, onProgress ProgressFunc) (*models.FetchResult, error)
}

// DefaultFetcher implements Fetcher
type DefaultFetcher struct {
	search     SearchAggregator
	downloader MusicDownloader
	maxHits    int
}

// NewFetcher creates a fetcher trying at most maxHits hits (DefaultFetchHits when <= 0)
func NewFetcher(search SearchAggregator, downloader MusicDownloader, maxHits int) Fetcher {
	if maxHits <= 0 {
		maxHits = DefaultFetchHits
	}
	return &DefaultFetcher{search: search, downloader: downloader, maxHits: maxHits}
}

func (f *DefaultFetcher) Fetch(ctx context.Context, keyword string, selector models.Platform, target models.Quality, dir string, onProgress ProgressFunc) (*models.FetchResult, error) {
	logger := config.GetLogger()

	tracks, err := f.search.Search(ctx, keyword, selector)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNoSearchResults
	}
	if len(tracks) > f.maxHits {
		tracks = tracks[:f.maxHits]
	}

	var attempts []error
	for _, track := range tracks {
		for _, quality := range models.LadderFrom(target) {
			if !matrix.Supports(track.SourcePlatform, quality) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			name := SanitizeFilename(fmt.Sprintf("%s-%s.%s", track.Title, track.Artist, quality.Extension()))
			path := filepath.Join(dir, name)
			req := models.DownloadRequest{TrackRef: track.Ref(), Quality: quality}

			metadata := track
			result, err := f.downloader.DownloadToPath(ctx, req, path, DownloadOptions{
				Metadata:   &metadata,
				OnProgress: onProgress,
			})
			if err != nil {
				logger.Info().
					Err(err).
					Str("title", track.Title).
					Str("quality", quality.String()).
					Msg("Attempt failed, trying next option")
				attempts = append(attempts, fmt.Errorf("%s (%s) at %s: %w", track.Title, track.Ref().ExternalID, quality, err))
				continue
			}

			return &models.FetchResult{Track: track, Quality: quality, Path: result.Path}, nil
		}
	}

	if len(attempts) == 0 {
		return nil, ErrNoSearchResults
	}
	return nil, fmt.Errorf("no hit could be downloaded: %w", errors.Join(attempts...))
}

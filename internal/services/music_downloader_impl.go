package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Belphemur/SuperMusic/internal/apperrors"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/models"
)

// DefaultMusicDownloader chains the resolver and the transfer engine
type DefaultMusicDownloader struct {
	resolver Resolver
	engine   TransferEngine
	tagger   Tagger
}

// NewMusicDownloader creates a downloader. tagger may be nil to disable tagging.
func NewMusicDownloader(resolver Resolver, engine TransferEngine, tagger Tagger) MusicDownloader {
	return &DefaultMusicDownloader{resolver: resolver, engine: engine, tagger: tagger}
}

func (d *DefaultMusicDownloader) DownloadToDir(ctx context.Context, req models.DownloadRequest, dir string, opts DownloadOptions) (*models.DownloadResult, error) {
	name := SanitizeFilename(strings.TrimSpace(req.ExternalID)) + "." + req.Quality.Extension()
	return d.DownloadToPath(ctx, req, filepath.Join(dir, name), opts)
}

func (d *DefaultMusicDownloader) DownloadToPath(ctx context.Context, req models.DownloadRequest, path string, opts DownloadOptions) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	target, err := d.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, &apperrors.IOError{Op: "create output directory", Err: err}
		}
	}

	progress, err := d.engine.Transfer(ctx, target.URL, FileSink(path), opts.OnProgress)
	if err != nil {
		return nil, err
	}

	if opts.Metadata != nil && d.tagger != nil {
		if err := d.tagger.Tag(path, *opts.Metadata); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Metadata tag embedding failed")
		}
	}

	logger.Info().
		Str("path", path).
		Uint64("bytes", progress.BytesTransferred).
		Msg("Track saved")

	return &models.DownloadResult{Path: path, Request: req, Progress: progress}, nil
}

// SanitizeFilename replaces characters that are invalid in file names with '_'
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

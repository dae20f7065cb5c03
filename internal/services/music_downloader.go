package services

import (
	"context"

	"github.com/Belphemur/SuperMusic/internal/models"
)

// DownloadOptions tunes a single download
type DownloadOptions struct {
	// Metadata, when set, is embedded into mp3 output.
	Metadata *models.TrackRecord
	// OnProgress receives transfer progress; nil disables reporting.
	OnProgress ProgressFunc
}

// MusicDownloader resolves a track and saves it to disk
type MusicDownloader interface {
	// DownloadToDir saves the track as <dir>/<id>.<ext>.
	DownloadToDir(ctx context.Context, req models.DownloadRequest, dir string, opts DownloadOptions) (*models.DownloadResult, error)

	// DownloadToPath saves the track at path, creating parent directories.
	DownloadToPath(ctx context.Context, req models.DownloadRequest, path string, opts DownloadOptions) (*models.DownloadResult, error)
}

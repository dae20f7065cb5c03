package grpc

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/services"
)

type mockResolver struct {
	resolveFunc func(ctx context.Context, req models.DownloadRequest) (*models.ResolvedTarget, error)
}

func (m *mockResolver) Resolve(ctx context.Context, req models.DownloadRequest) (*models.ResolvedTarget, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, req)
	}
	return &models.ResolvedTarget{URL: "https://cdn.example.com/a.mp3"}, nil
}

type mockSearch struct {
	searchFunc func(ctx context.Context, keyword string, selector models.Platform) ([]models.TrackRecord, error)
}

func (m *mockSearch) Search(ctx context.Context, keyword string, selector models.Platform) ([]models.TrackRecord, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, keyword, selector)
	}
	return []models.TrackRecord{}, nil
}

type mockDownloader struct {
	downloadFunc func(ctx context.Context, req models.DownloadRequest, path string, opts services.DownloadOptions) (*models.DownloadResult, error)
}

func (m *mockDownloader) DownloadToDir(ctx context.Context, req models.DownloadRequest, dir string, opts services.DownloadOptions) (*models.DownloadResult, error) {
	return m.DownloadToPath(ctx, req, dir+"/"+req.ExternalID+"."+req.Quality.Extension(), opts)
}

func (m *mockDownloader) DownloadToPath(ctx context.Context, req models.DownloadRequest, path string, opts services.DownloadOptions) (*models.DownloadResult, error) {
	if m.downloadFunc != nil {
		return m.downloadFunc(ctx, req, path, opts)
	}
	return &models.DownloadResult{Path: path, Request: req}, nil
}

type mockFetcher struct {
	fetchFunc func(ctx context.Context, keyword string, selector models.Platform, target models.Quality, dir string, onProgress services.ProgressFunc) (*models.FetchResult, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, keyword string, selector models.Platform, target models.Quality, dir string, onProgress services.ProgressFunc) (*models.FetchResult, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, keyword, selector, target, dir, onProgress)
	}
	return nil, services.ErrNoSearchResults
}

// defaultServices returns mocks with default behaviour for every component.
func defaultServices() Services {
	return Services{
		Resolver:   &mockResolver{},
		Search:     &mockSearch{},
		Downloader: &mockDownloader{},
		Fetcher:    &mockFetcher{},
	}
}

// startTestServer serves svc on a random local port and returns a connected client.
func startTestServer(t *testing.T, svc Services, opts Options) (*MusicServiceClient, *grpc.ClientConn) {
	t.Helper()

	srv := NewGRPCServer(svc, opts)
	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return NewMusicServiceClient(conn), conn
}

// Package app wires the music services together from a Config, for use by
// the daemon and the command-line tool.
package app

import (
	"fmt"

	"github.com/Belphemur/SuperMusic/internal/cache"
	"github.com/Belphemur/SuperMusic/internal/client"
	"github.com/Belphemur/SuperMusic/internal/config"
	"github.com/Belphemur/SuperMusic/internal/services"
)

// searchCacheGroup namespaces cached search payloads.
const searchCacheGroup = "search"

// Components holds the wired services of one process.
type Components struct {
	Client     client.Client
	Resolver   services.Resolver
	Search     services.SearchAggregator
	Engine     services.TransferEngine
	Downloader services.MusicDownloader
	Fetcher    services.Fetcher
}

// New builds every component described by cfg. Close releases them.
func New(cfg *config.Config) (*Components, error) {
	searchCache, err := cache.NewFromConfig(cfg, searchCacheGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}

	c := client.NewClient(cfg, searchCache)

	var tagger services.Tagger
	if cfg.Download.TagMetadata {
		tagger = services.NewID3Tagger()
	}

	resolver := services.NewResolver(c)
	engine := services.NewTransferEngine(c)
	search := services.NewSearchAggregator(c)
	downloader := services.NewMusicDownloader(resolver, engine, tagger)

	return &Components{
		Client:     c,
		Resolver:   resolver,
		Search:     search,
		Engine:     engine,
		Downloader: downloader,
		Fetcher:    services.NewFetcher(search, downloader, services.DefaultFetchHits),
	}, nil
}

// Close releases the client and its cache connections.
func (c *Components) Close() error {
	return c.Client.Close()
}

package app

import (
	"context"
	"fmt"

	"github.com/oshokin/yamusic-grabber/internal/client/yandex"
	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/service/grabber"
	"github.com/oshokin/yamusic-grabber/internal/store"
)

// components holds the wired application graph for one command execution.
type components struct {
	// store is the catalog database.
	store store.Store
	// controller is the queue management surface.
	controller grabber.Controller
	// staging owns intermediate files.
	staging *grabber.StagingManager
}

// newComponents builds the full component graph from the configuration.
func newComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	client, err := yandex.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}

	s, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	staging, err := grabber.NewStagingManager(grabber.StagingDir(cfg.OutputPath))
	if err != nil {
		closeStore(ctx, s)

		return nil, err
	}

	pathBuilder := grabber.NewPathBuilder(cfg.OutputPath, cfg.TrackFilenameTemplate, cfg.FolderTemplate)
	decryptor := grabber.NewDecryptor()
	remuxer := grabber.NewRemuxer(cfg.FFmpegPath, grabber.IsNetworkPath(cfg.OutputPath))
	tagProcessor := grabber.NewTagProcessor()

	engine := grabber.NewEngine(cfg, client, decryptor, remuxer, tagProcessor, pathBuilder, staging)
	worker := grabber.NewWorker(cfg, s, engine)
	controller := grabber.NewController(cfg, client, s, worker, staging)

	return &components{
		store:      s,
		controller: controller,
		staging:    staging,
	}, nil
}

// Close releases the component resources.
func (c *components) Close(ctx context.Context) {
	closeStore(ctx, c.store)
}

func closeStore(ctx context.Context, s store.Store) {
	if err := s.Close(); err != nil {
		logger.Warnf(ctx, "Failed to close catalog database: %v", err)
	}
}

// withComponents builds the component graph, runs fn and tears the graph down
// again. Any error is fatal: the CLI has nothing to recover to.
func withComponents(ctx context.Context, cfg *config.Config, fn func(c *components) error) {
	c, err := newComponents(ctx, cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize application: %v", err)
	}

	defer c.Close(ctx)

	if err = fn(c); err != nil {
		logger.Fatalf(ctx, "%v", err)
	}
}

package cmd

import (
	"fmt"

	"mastodon-sync/core/archive"
	"mastodon-sync/core/config"
	"mastodon-sync/core/database"
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/loader"
	"mastodon-sync/core/logger"
	"mastodon-sync/core/reconcile"
	"mastodon-sync/core/storage"
	"mastodon-sync/feature/accounts"
	"mastodon-sync/feature/integrity"
	"mastodon-sync/feature/push"
	"mastodon-sync/feature/replay"
	"mastodon-sync/feature/tags"
	"mastodon-sync/feature/timeline"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the dependencies shared by the server and the CLI commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	storage  storage.Client
	archive  *archive.Archive
	engine   *reconcile.Engine
	pipeline *ingest.Pipeline
	features *loader.Manager
}

// newApp loads the configuration and connects to the database and storage. Every
// ingest kind is registered on the pipeline router once it returns.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to graph database", zap.String("driver", cfg.Database.Driver))

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		storage: client,
		archive: archive.New(client, cfg.Storage.Bucket, cfg.Archive),
		engine:  reconcile.NewEngine(db, cfg.Sync, logg),
	}

	// A nil *Archive must not reach the interface.
	var archiver ingest.Archiver
	if cfg.Archive.Enabled {
		archiver = a.archive
	}
	a.pipeline = ingest.NewPipeline(ingest.NewRouter(), archiver, logg)

	a.features = loader.NewManager()
	a.features.Register(timeline.NewFeature(a.engine, a.pipeline, logg))
	a.features.Register(accounts.NewFeature(a.engine, a.pipeline, logg))
	a.features.Register(tags.NewFeature(a.engine, a.pipeline, logg))
	a.features.Register(push.NewFeature(a.engine, db, a.pipeline, logg))
	a.features.Register(replay.NewFeature(a.archive, a.pipeline.Router(), logg))
	a.features.Register(integrity.NewFeature(client, cfg.Storage.Bucket, []string{a.archive.Prefix()}, db, logg, integrity.DefaultReportTTL))

	return a, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

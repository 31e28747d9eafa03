package tags

import (
	"context"

	"mastodon-sync/core/ingest"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/reconcile"

	"go.uber.org/zap"
)

// Service reconciles tag payloads.
type Service struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new tags service.
func NewService(engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// Register binds the tag kind to r.
func (s *Service) Register(r *ingest.Router) {
	r.Register(ingest.KindTags, s.IngestTags)
}

// IngestTags upserts every tag of env and merges its history window.
func (s *Service) IngestTags(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
	tags, err := ingest.DecodeList[mastodon.Tag](env)
	if err != nil {
		return ingest.Result{}, err
	}

	stats, err := s.engine.Run(ctx, env.BatchOptions(), func(ctx context.Context, b *reconcile.Batch) error {
		for _, t := range tags {
			if _, _, err := reconcile.ReconcileTag(ctx, b, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ingest.Result{}, err
	}
	return ingest.ResultFromStats(stats), nil
}

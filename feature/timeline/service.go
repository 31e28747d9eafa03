package timeline

import (
	"context"

	"mastodon-sync/core/ingest"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/reconcile"

	"go.uber.org/zap"
)

// Service reconciles status payloads.
type Service struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new timeline service.
func NewService(engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// Register binds the status kinds to r.
func (s *Service) Register(r *ingest.Router) {
	r.Register(ingest.KindStatuses, s.IngestStatuses)
	r.Register(ingest.KindStatus, s.IngestStatuses)
}

// IngestStatuses reconciles every status of env in one batch, in payload order.
func (s *Service) IngestStatuses(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
	statuses, err := ingest.DecodeList[mastodon.Status](env)
	if err != nil {
		return ingest.Result{}, err
	}

	stats, err := s.engine.Run(ctx, env.BatchOptions(), func(ctx context.Context, b *reconcile.Batch) error {
		for _, st := range statuses {
			if _, err := reconcile.ReconcileStatus(ctx, b, st); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ingest.Result{}, err
	}

	s.logger.Debug("Reconciled statuses",
		zap.String("domain", env.Domain),
		zap.Int("statuses", len(statuses)),
		zap.Int("created", stats.Inserts))
	return ingest.ResultFromStats(stats), nil
}

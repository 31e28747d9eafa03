package accounts

import (
	"context"
	"errors"

	"mastodon-sync/core/ingest"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/reconcile"
	"mastodon-sync/core/store"

	"go.uber.org/zap"
)

// Service reconciles account and relationship payloads.
type Service struct {
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new accounts service.
func NewService(engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

// Register binds the account kinds to r.
func (s *Service) Register(r *ingest.Router) {
	r.Register(ingest.KindAccounts, s.IngestAccounts)
	r.Register(ingest.KindRelationships, s.IngestRelationships)
}

// IngestAccounts upserts every account of env.
func (s *Service) IngestAccounts(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
	accounts, err := ingest.DecodeList[mastodon.Account](env)
	if err != nil {
		return ingest.Result{}, err
	}

	stats, err := s.engine.Run(ctx, env.BatchOptions(), func(ctx context.Context, b *reconcile.Batch) error {
		for _, a := range accounts {
			if _, _, err := reconcile.ReconcileUser(ctx, b, a); err != nil {
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

// IngestRelationships applies the viewer's relationships. Updated counts applied
// relationships; Skipped counts unknown subjects and relationships older than the
// viewer's last update.
func (s *Service) IngestRelationships(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
	if env.ViewerID == "" {
		return ingest.Result{}, reconcile.ErrViewerRequired
	}

	rels, err := ingest.DecodeList[mastodon.Relationship](env)
	if err != nil {
		return ingest.Result{}, err
	}

	var res ingest.Result
	_, err = s.engine.Run(ctx, env.BatchOptions(), func(ctx context.Context, b *reconcile.Batch) error {
		if b.Viewer() == nil {
			return reconcile.ErrViewerRequired
		}

		for _, rel := range rels {
			subject, err := reconcile.LookupUser(ctx, b, rel.ID.String())
			if errors.Is(err, store.ErrNotFound) {
				s.logger.Debug("Skipping relationship with unknown account",
					zap.String("domain", env.Domain),
					zap.String("account_id", rel.ID.String()))
				res.Skipped++
				continue
			}
			if err != nil {
				return err
			}

			applied, err := reconcile.ReconcileRelationship(ctx, b, rel, subject)
			if err != nil {
				return err
			}
			if applied {
				res.Updated++
			} else {
				res.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return ingest.Result{}, err
	}
	return res, nil
}

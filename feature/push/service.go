package push

import (
	"context"
	"errors"
	"time"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/ingest"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/reconcile"
	"mastodon-sync/core/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoSubscription is returned when the viewer has no setting or subscription yet.
var ErrNoSubscription = errors.New("no push subscription")

// Service reconciles setting and subscription payloads.
type Service struct {
	engine *reconcile.Engine
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new push service.
func NewService(engine *reconcile.Engine, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{engine: engine, db: db, logger: logger}
}

// Register binds the push kinds to r.
func (s *Service) Register(r *ingest.Router) {
	r.Register(ingest.KindSetting, s.IngestSetting)
	r.Register(ingest.KindSubscription, s.IngestSubscription)
}

// IngestSetting upserts the viewer's setting properties.
func (s *Service) IngestSetting(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
	var prop mastodon.SettingProperty
	if err := env.Decode(&prop); err != nil {
		return ingest.Result{}, err
	}

	stats, err := s.engine.Run(ctx, env.BatchOptions(), func(ctx context.Context, b *reconcile.Batch) error {
		_, _, err := reconcile.ReconcileSetting(ctx, b, env.ViewerID, prop)
		return err
	})
	if err != nil {
		return ingest.Result{}, err
	}
	return ingest.ResultFromStats(stats), nil
}

// IngestSubscription upserts a push subscription, creating the viewer's setting
// first when it does not exist.
func (s *Service) IngestSubscription(ctx context.Context, env ingest.Envelope) (ingest.Result, error) {
	var sub mastodon.Subscription
	if err := env.Decode(&sub); err != nil {
		return ingest.Result{}, err
	}

	var res ingest.Result
	_, err := s.engine.Run(ctx, env.BatchOptions(), func(ctx context.Context, b *reconcile.Batch) error {
		setting, err := reconcile.EnsureSetting(ctx, b, env.ViewerID)
		if err != nil {
			return err
		}

		_, _, err = reconcile.ReconcileSubscription(ctx, b, sub, env.Policy, setting)
		if err != nil {
			return err
		}

		// Only the subscription itself is reported; seeding is bookkeeping.
		res = ingest.ResultFromStats(b.Stats(reconcile.KindSubscription))
		return nil
	})
	if err != nil {
		return ingest.Result{}, err
	}
	return res, nil
}

// ActiveView is the active subscription of a viewer with its alerts.
type ActiveView struct {
	Policy      string          `json:"policy"`
	RemoteID    string          `json:"id,omitempty"`
	Endpoint    string          `json:"endpoint,omitempty"`
	ServerKey   string          `json:"server_key,omitempty"`
	ActivatedAt time.Time       `json:"activated_at"`
	Alerts      mastodon.Alerts `json:"alerts"`
}

// Active returns the active subscription of viewerID on domain.
func (s *Service) Active(ctx context.Context, domain, viewerID string) (*ActiveView, error) {
	if viewerID == "" {
		return nil, reconcile.ErrViewerRequired
	}

	st := store.New(s.db)
	setting, err := store.First[graph.Setting](ctx, st, "domain = ? AND viewer_id = ?", domain, viewerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, err
	}

	sub, err := reconcile.ActiveSubscription(ctx, st, setting)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, err
	}

	view := &ActiveView{
		Policy:      sub.Policy,
		RemoteID:    sub.RemoteID,
		Endpoint:    sub.Endpoint,
		ServerKey:   sub.ServerKey,
		ActivatedAt: sub.ActivatedAt,
	}

	alerts, err := store.First[graph.SubscriptionAlerts](ctx, st, "subscription_id = ?", sub.ID)
	switch {
	case err == nil:
		view.Alerts = mastodon.Alerts{
			Favourite: alerts.Favourite,
			Follow:    alerts.Follow,
			Reblog:    alerts.Reblog,
			Mention:   alerts.Mention,
			Poll:      alerts.Poll,
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}
	return view, nil
}

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrViewerRequired is returned by operations that need the requesting account
// when the batch has none.
var ErrViewerRequired = errors.New("reconcile: viewer required")

// ErrUnknownPolicy is returned for a push policy outside mastodon.Policies.
var ErrUnknownPolicy = errors.New("reconcile: unknown push policy")

// ErrInvalidEntity is returned for an entity missing its identity (id or name).
var ErrInvalidEntity = errors.New("reconcile: invalid entity")

// Engine runs reconciliation batches against the graph database.
type Engine struct {
	store  *store.Store
	cfg    Config
	logger *zap.Logger
}

// NewEngine creates an engine over db.
func NewEngine(db *gorm.DB, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{store: store.New(db), cfg: cfg, logger: logger}
}

// BatchOptions is the context shared by every entity of one API response.
type BatchOptions struct {
	// Domain is the instance the response came from.
	Domain string
	// ObservedAt is when the response was received. Zero means now.
	ObservedAt time.Time
	// ViewerID is the remote id of the requesting account, if any.
	ViewerID string
	// DisableCache resolves every reference through the store.
	DisableCache bool
}

// Normalize converts t to the precision the gate compares at.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Run executes fn inside one transaction. Nothing fn wrote is committed when it
// returns an error.
func (e *Engine) Run(ctx context.Context, opts BatchOptions, fn func(ctx context.Context, b *Batch) error) (Stats, error) {
	if opts.Domain == "" {
		return Stats{}, errors.New("reconcile: domain is required")
	}

	observedAt := opts.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	var stats Stats
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		b := &Batch{
			store:      tx,
			cfg:        e.cfg,
			logger:     e.logger.With(zap.String("domain", opts.Domain)),
			domain:     opts.Domain,
			observedAt: Normalize(observedAt),
			viewerID:   opts.ViewerID,
			stamped:    make(map[uint]struct{}),
			stats:      make(map[Kind]*Stats),
		}
		if !opts.DisableCache {
			b.cache = NewCache()
		}

		if opts.ViewerID != "" {
			viewer, err := store.First[graph.User](ctx, tx, "domain = ? AND remote_id = ?", opts.Domain, opts.ViewerID)
			switch {
			case err == nil:
				b.viewer = viewer
			case errors.Is(err, store.ErrNotFound):
				b.logger.Debug("Viewer not materialized yet", zap.String("viewer_id", opts.ViewerID))
			default:
				return fmt.Errorf("failed to resolve viewer: %w", err)
			}
		}

		if err := fn(ctx, b); err != nil {
			return err
		}

		stats = b.Totals()
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}

// Batch is the state of one reconciliation pass.
type Batch struct {
	store      *store.Store
	cache      *Cache
	cfg        Config
	logger     *zap.Logger
	domain     string
	observedAt time.Time
	viewerID   string
	viewer     *graph.User

	// stamped holds users whose UpdatedAt this batch set to observedAt.
	stamped map[uint]struct{}
	stats   map[Kind]*Stats
}

// ObservedAt returns the normalized observation time of the batch.
func (b *Batch) ObservedAt() time.Time {
	return b.observedAt
}

// Viewer returns the requesting account, or nil.
func (b *Batch) Viewer() *graph.User {
	return b.viewer
}

// Store returns the transactional store of the batch.
func (b *Batch) Store() *store.Store {
	return b.store
}

// Stats returns the counters for kind.
func (b *Batch) Stats(kind Kind) Stats {
	if s, ok := b.stats[kind]; ok {
		return *s
	}
	return Stats{}
}

// Totals returns the counters summed over every kind.
func (b *Batch) Totals() Stats {
	var total Stats
	for _, s := range b.stats {
		total = total.add(*s)
	}
	return total
}

func (b *Batch) record(kind Kind, fn func(*Stats)) {
	s, ok := b.stats[kind]
	if !ok {
		s = &Stats{}
		b.stats[kind] = s
	}
	fn(s)
}

// newer reports whether the batch passes the gate of a node stamped at updatedAt.
func (b *Batch) newer(updatedAt time.Time) bool {
	return b.observedAt.After(updatedAt)
}

func (b *Batch) stampUser(u *graph.User) {
	u.UpdatedAt = b.observedAt
	if u.ID != 0 {
		b.stamped[u.ID] = struct{}{}
	}
}

func (b *Batch) stampedByBatch(u *graph.User) bool {
	_, ok := b.stamped[u.ID]
	return ok
}

func kindField(k Kind) zap.Field {
	return zap.String("kind", string(k))
}

func idField(id string) zap.Field {
	return zap.String("id", id)
}

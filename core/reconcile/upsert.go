package reconcile

import (
	"context"
	"errors"
	"fmt"

	"mastodon-sync/core/store"
)

// Policy parameterizes Upsert for one node kind.
type Policy[N any] struct {
	// Kind, Domain and ID form the batch cache key.
	Kind   Kind
	Domain string
	ID     string

	// Find loads the stored node and returns store.ErrNotFound when there is none.
	Find func(ctx context.Context) (*N, error)
	// Construct builds the node to insert.
	Construct func() *N
	// Merge applies the incoming entity to an existing node and reports whether
	// anything was written.
	Merge func(ctx context.Context, existing *N) (bool, error)
	// AfterInsert creates owned children once the node has its primary key.
	AfterInsert func(ctx context.Context, node *N) error
}

// Upsert resolves a node from the batch cache, then the store, and creates it when
// both miss. A cache hit returns the node untouched: it was already reconciled in
// this batch. It reports whether the node was created.
func Upsert[N any](ctx context.Context, b *Batch, p Policy[N]) (*N, bool, error) {
	b.record(p.Kind, func(s *Stats) { s.Lookups++ })

	if node, ok := cached[N](b.cache, p.Kind, p.Domain, p.ID); ok {
		b.record(p.Kind, func(s *Stats) { s.Hits++ })
		return node, false, nil
	}

	existing, err := p.Find(ctx)
	if err == nil {
		return mergeExisting(ctx, b, p, existing)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to find %s %s: %w", p.Kind, p.ID, err)
	}

	node := p.Construct()
	created, err := b.store.InsertIfAbsent(ctx, node)
	if err != nil {
		return nil, false, err
	}
	if !created {
		// Another writer inserted the same identity first; merge into its row.
		existing, err := p.Find(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("failed to reload %s %s: %w", p.Kind, p.ID, err)
		}
		return mergeExisting(ctx, b, p, existing)
	}

	if p.AfterInsert != nil {
		if err := p.AfterInsert(ctx, node); err != nil {
			return nil, false, err
		}
	}

	b.record(p.Kind, func(s *Stats) { s.Inserts++ })
	b.cache.Put(p.Kind, p.Domain, p.ID, node)
	b.logger.Debug("Created node", kindField(p.Kind), idField(p.ID))
	return node, true, nil
}

func mergeExisting[N any](ctx context.Context, b *Batch, p Policy[N], existing *N) (*N, bool, error) {
	merged, err := p.Merge(ctx, existing)
	if err != nil {
		return nil, false, fmt.Errorf("failed to merge %s %s: %w", p.Kind, p.ID, err)
	}

	if merged {
		b.record(p.Kind, func(s *Stats) { s.Merges++ })
	} else {
		b.record(p.Kind, func(s *Stats) { s.Stale++ })
	}

	b.cache.Put(p.Kind, p.Domain, p.ID, existing)
	return existing, false, nil
}

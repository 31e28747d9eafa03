package reconcile

import (
	"context"
	"fmt"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"
)

// ReconcileTag upserts a hashtag and merges its usage history.
//
// Tags are shared across statuses and are not gated by observation time: every
// sighting rewrites the history window.
func ReconcileTag(ctx context.Context, b *Batch, entity mastodon.Tag) (*graph.Tag, bool, error) {
	if entity.Name == "" {
		return nil, false, fmt.Errorf("%w: tag name is empty", ErrInvalidEntity)
	}

	incoming := entity.History
	if window := b.cfg.historyWindow(); len(incoming) > window {
		incoming = incoming[:window]
	}

	return Upsert(ctx, b, Policy[graph.Tag]{
		Kind:   KindTag,
		Domain: b.domain,
		ID:     entity.Name,
		Find: func(ctx context.Context) (*graph.Tag, error) {
			return store.First[graph.Tag](ctx, b.store, "domain = ? AND name = ?", b.domain, entity.Name)
		},
		Construct: func() *graph.Tag {
			return &graph.Tag{
				Domain:    b.domain,
				Name:      entity.Name,
				URL:       entity.URL,
				UpdatedAt: b.observedAt,
			}
		},
		Merge: func(ctx context.Context, t *graph.Tag) (bool, error) {
			t.URL = entity.URL
			t.UpdatedAt = b.observedAt
			if err := b.store.Save(ctx, t); err != nil {
				return false, err
			}
			return true, mergeHistories(ctx, b, t, incoming)
		},
		AfterInsert: func(ctx context.Context, t *graph.Tag) error {
			return appendHistories(ctx, b, t, incoming, 0)
		},
	})
}

// Histories returns the usage window of tag, oldest position first.
func Histories(ctx context.Context, s *store.Store, tag *graph.Tag) ([]graph.History, error) {
	return store.Find[graph.History](ctx, s, "position", "tag_id = ?", tag.ID)
}

// mergeHistories overwrites the existing entries position by position and appends
// the incoming entries beyond the existing length. Entries are not matched by day.
func mergeHistories(ctx context.Context, b *Batch, t *graph.Tag, incoming []mastodon.History) error {
	existing, err := Histories(ctx, b.store, t)
	if err != nil {
		return fmt.Errorf("failed to load history of tag %s: %w", t.Name, err)
	}

	for i := 0; i < min(len(existing), len(incoming)); i++ {
		h := &existing[i]
		copyHistory(h, incoming[i])
		if err := b.store.Save(ctx, h); err != nil {
			return err
		}
	}

	if len(incoming) > len(existing) {
		return appendHistories(ctx, b, t, incoming[len(existing):], len(existing))
	}
	return nil
}

func appendHistories(ctx context.Context, b *Batch, t *graph.Tag, entries []mastodon.History, offset int) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]graph.History, len(entries))
	for i, e := range entries {
		rows[i] = graph.History{TagID: t.ID, Position: offset + i}
		copyHistory(&rows[i], e)
	}
	return b.store.Insert(ctx, &rows)
}

func copyHistory(h *graph.History, e mastodon.History) {
	h.Day = e.DayTime()
	h.Uses = e.UsesCount()
	h.Accounts = e.AccountsCount()
}

package reconcile

import (
	"context"
	"fmt"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"
)

// ReconcilePoll upserts a poll with its options and the viewer's votes.
func ReconcilePoll(ctx context.Context, b *Batch, entity mastodon.Poll) (*graph.Poll, bool, error) {
	id := entity.ID.String()
	if id == "" {
		return nil, false, fmt.Errorf("%w: poll id is empty", ErrInvalidEntity)
	}

	return Upsert(ctx, b, Policy[graph.Poll]{
		Kind:   KindPoll,
		Domain: b.domain,
		ID:     id,
		Find: func(ctx context.Context) (*graph.Poll, error) {
			return store.First[graph.Poll](ctx, b.store, "domain = ? AND remote_id = ?", b.domain, id)
		},
		Construct: func() *graph.Poll {
			p := &graph.Poll{Domain: b.domain, RemoteID: id}
			copyPoll(p, entity)
			p.UpdatedAt = b.observedAt
			return p
		},
		Merge: func(ctx context.Context, p *graph.Poll) (bool, error) {
			if !b.newer(p.UpdatedAt) {
				return false, nil
			}
			return true, mergePoll(ctx, b, p, entity)
		},
		AfterInsert: func(ctx context.Context, p *graph.Poll) error {
			return createPollOptions(ctx, b, p, entity)
		},
	})
}

func createPollOptions(ctx context.Context, b *Batch, p *graph.Poll, entity mastodon.Poll) error {
	if len(entity.Options) == 0 {
		return nil
	}

	options := make([]graph.PollOption, len(entity.Options))
	for i, o := range entity.Options {
		options[i] = graph.PollOption{
			PollID:     p.ID,
			Index:      i,
			Title:      o.Title,
			VotesCount: o.VotesCount,
			UpdatedAt:  b.observedAt,
		}
	}
	if err := b.store.Insert(ctx, &options); err != nil {
		return err
	}

	viewer := b.viewer
	if viewer == nil {
		return nil
	}

	for i := range options {
		if !entity.HasOwnVote(i) {
			continue
		}
		vote := &graph.PollOptionVote{PollOptionID: options[i].ID, UserID: viewer.ID}
		if err := store.SetMember(ctx, b.store, vote, true); err != nil {
			return err
		}
	}

	if entity.Voted != nil && *entity.Voted {
		return store.SetMember(ctx, b.store, &graph.PollVote{PollID: p.ID, UserID: viewer.ID}, true)
	}
	return nil
}

// mergePoll copies the poll counters and the viewer's votes. Existing options are
// sorted by index and paired with the incoming options by position.
func mergePoll(ctx context.Context, b *Batch, p *graph.Poll, entity mastodon.Poll) error {
	copyPoll(p, entity)
	p.UpdatedAt = b.observedAt
	if err := b.store.Save(ctx, p); err != nil {
		return err
	}

	viewer := b.viewer
	if viewer != nil && entity.Voted != nil {
		vote := &graph.PollVote{PollID: p.ID, UserID: viewer.ID}
		if err := store.SetMember(ctx, b.store, vote, *entity.Voted); err != nil {
			return err
		}
	}

	options, err := store.Find[graph.PollOption](ctx, b.store, "option_index", "poll_id = ?", p.ID)
	if err != nil {
		return fmt.Errorf("failed to load options of poll %s: %w", p.RemoteID, err)
	}

	for i := 0; i < min(len(options), len(entity.Options)); i++ {
		option := &options[i]
		option.VotesCount = entity.Options[i].VotesCount
		option.UpdatedAt = b.observedAt
		if err := b.store.Save(ctx, option); err != nil {
			return err
		}

		if viewer == nil {
			continue
		}
		vote := &graph.PollOptionVote{PollOptionID: option.ID, UserID: viewer.ID}
		if err := store.SetMember(ctx, b.store, vote, entity.HasOwnVote(i)); err != nil {
			return err
		}
	}

	b.cache.Put(KindPoll, b.domain, p.RemoteID, p)
	return nil
}

func copyPoll(p *graph.Poll, entity mastodon.Poll) {
	if entity.ExpiresAt != nil {
		t := entity.ExpiresAt.UTC()
		p.ExpiresAt = &t
	} else {
		p.ExpiresAt = nil
	}
	p.Expired = entity.Expired
	p.Multiple = entity.Multiple
	p.VotesCount = entity.VotesCount
	p.VotersCount = entity.VotersCount
}

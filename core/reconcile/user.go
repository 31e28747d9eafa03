package reconcile

import (
	"context"
	"errors"
	"fmt"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"
)

// ReconcileUser upserts account and reports whether it was created.
func ReconcileUser(ctx context.Context, b *Batch, account mastodon.Account) (*graph.User, bool, error) {
	id := account.ID.String()
	if id == "" {
		return nil, false, fmt.Errorf("%w: account id is empty", ErrInvalidEntity)
	}

	user, created, err := Upsert(ctx, b, Policy[graph.User]{
		Kind:   KindUser,
		Domain: b.domain,
		ID:     id,
		Find: func(ctx context.Context) (*graph.User, error) {
			return findUser(ctx, b, id)
		},
		Construct: func() *graph.User {
			u := &graph.User{
				Domain:    b.domain,
				RemoteID:  id,
				CreatedAt: account.CreatedAt.UTC(),
			}
			copyAccount(u, account)
			u.UpdatedAt = b.observedAt
			return u
		},
		Merge: func(ctx context.Context, u *graph.User) (bool, error) {
			if !b.newer(u.UpdatedAt) {
				return false, nil
			}
			copyAccount(u, account)
			b.stampUser(u)
			return true, b.store.Save(ctx, u)
		},
		AfterInsert: func(ctx context.Context, u *graph.User) error {
			b.stampUser(u)
			return nil
		},
	})
	if err != nil {
		return nil, false, err
	}

	if id == b.viewerID {
		b.viewer = user
	}
	return user, created, nil
}

// LookupUser resolves an already materialized user without creating one.
// It returns store.ErrNotFound when the user is unknown.
func LookupUser(ctx context.Context, b *Batch, remoteID string) (*graph.User, error) {
	b.record(KindUser, func(s *Stats) { s.Lookups++ })

	if u, ok := cached[graph.User](b.cache, KindUser, b.domain, remoteID); ok {
		b.record(KindUser, func(s *Stats) { s.Hits++ })
		return u, nil
	}
	if b.viewer != nil && b.viewer.RemoteID == remoteID {
		return b.viewer, nil
	}
	return findUser(ctx, b, remoteID)
}

func findUser(ctx context.Context, b *Batch, remoteID string) (*graph.User, error) {
	u, err := store.First[graph.User](ctx, b.store, "domain = ? AND remote_id = ?", b.domain, remoteID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user %s: %w", remoteID, err)
	}
	return u, err
}

// copyAccount writes every API-visible field. Bot and Suspended are only written
// when the payload carries them.
func copyAccount(u *graph.User, a mastodon.Account) {
	u.Username = a.Username
	u.Acct = a.Acct
	u.DisplayName = a.DisplayName
	u.Avatar = a.Avatar
	u.AvatarStatic = a.AvatarStatic
	u.Header = a.Header
	u.HeaderStatic = a.HeaderStatic
	u.Note = a.Note
	u.URL = a.URL
	u.StatusesCount = a.StatusesCount
	u.FollowingCount = a.FollowingCount
	u.FollowersCount = a.FollowersCount
	u.Locked = a.Locked

	if a.Bot != nil {
		u.Bot = *a.Bot
	}
	if a.Suspended != nil {
		u.Suspended = *a.Suspended
	}
}

package reconcile

import (
	"context"
	"errors"
	"fmt"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"

	"go.uber.org/zap"
)

// StatusResult is the outcome of ReconcileStatus.
type StatusResult struct {
	Status *graph.Status
	// Created is true when the status node was inserted by this call.
	Created bool
	// AuthorCreated is true when the author was inserted while creating the status.
	AuthorCreated bool
}

// ReconcileStatus upserts a status tree. A reblogged status is reconciled first so
// the outer status can reference it; the chain is therefore acyclic.
func ReconcileStatus(ctx context.Context, b *Batch, entity mastodon.Status) (StatusResult, error) {
	id := entity.ID.String()
	if id == "" {
		return StatusResult{}, fmt.Errorf("%w: status id is empty", ErrInvalidEntity)
	}

	var reblogOf *graph.Status
	if entity.Reblog != nil {
		inner, err := ReconcileStatus(ctx, b, *entity.Reblog)
		if err != nil {
			return StatusResult{}, fmt.Errorf("failed to reconcile reblog of %s: %w", id, err)
		}
		reblogOf = inner.Status
	}

	b.record(KindStatus, func(s *Stats) { s.Lookups++ })
	if st, ok := cached[graph.Status](b.cache, KindStatus, b.domain, id); ok {
		b.record(KindStatus, func(s *Stats) { s.Hits++ })
		return StatusResult{Status: st}, nil
	}

	existing, err := findStatus(ctx, b, id)
	switch {
	case err == nil:
		if err := mergeStatus(ctx, b, existing, entity); err != nil {
			return StatusResult{}, err
		}
		return StatusResult{Status: existing}, nil
	case !errors.Is(err, store.ErrNotFound):
		return StatusResult{}, err
	}

	return createStatus(ctx, b, entity, reblogOf)
}

// StatusMembers returns the users in the kind set of st.
func StatusMembers(ctx context.Context, s *store.Store, st *graph.Status, kind graph.StatusRelation) ([]graph.User, error) {
	var users []graph.User
	err := s.DB().WithContext(ctx).
		Joins("JOIN status_members ON status_members.user_id = users.id").
		Where("status_members.status_id = ? AND status_members.kind = ?", st.ID, kind).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s members of status %s: %w", kind, st.RemoteID, err)
	}
	return users, nil
}

func findStatus(ctx context.Context, b *Batch, remoteID string) (*graph.Status, error) {
	st, err := store.First[graph.Status](ctx, b.store, "domain = ? AND remote_id = ?", b.domain, remoteID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to find status %s: %w", remoteID, err)
	}
	return st, err
}

func createStatus(ctx context.Context, b *Batch, entity mastodon.Status, reblogOf *graph.Status) (StatusResult, error) {
	id := entity.ID.String()

	author, authorCreated, err := ReconcileUser(ctx, b, entity.Account)
	if err != nil {
		return StatusResult{}, fmt.Errorf("failed to reconcile author of %s: %w", id, err)
	}

	st := &graph.Status{
		Domain:          b.domain,
		RemoteID:        id,
		URI:             entity.URI,
		URL:             deref(entity.URL),
		Content:         entity.Content,
		Text:            deref(entity.Text),
		Visibility:      entity.Visibility,
		Sensitive:       entity.Sensitive,
		SpoilerText:     entity.SpoilerText,
		Language:        deref(entity.Language),
		RepliesCount:    entity.RepliesCount,
		ReblogsCount:    entity.ReblogsCount,
		FavouritesCount: entity.FavouritesCount,
		AuthorID:        author.ID,
		CreatedAt:       entity.CreatedAt.UTC(),
		UpdatedAt:       b.observedAt,
	}
	if reblogOf != nil {
		st.ReblogOfID = &reblogOf.ID
	}
	if entity.InReplyToAccountID != nil {
		st.InReplyToAccountRemoteID = entity.InReplyToAccountID.String()
	}
	if entity.InReplyToID != nil {
		replyID := entity.InReplyToID.String()
		st.InReplyToRemoteID = replyID
		if target, ok := cached[graph.Status](b.cache, KindStatus, b.domain, replyID); ok {
			st.ReplyToID = &target.ID
		} else {
			b.logger.Debug("Reply target not in batch", idField(id), zap.String("in_reply_to", replyID))
		}
	}
	if entity.Poll != nil {
		poll, _, err := ReconcilePoll(ctx, b, *entity.Poll)
		if err != nil {
			return StatusResult{}, fmt.Errorf("failed to reconcile poll of %s: %w", id, err)
		}
		st.PollID = &poll.ID
	}

	created, err := b.store.InsertIfAbsent(ctx, st)
	if err != nil {
		return StatusResult{}, err
	}
	if !created {
		// Another writer inserted it first; fall back to the merge path.
		existing, err := findStatus(ctx, b, id)
		if err != nil {
			return StatusResult{}, fmt.Errorf("failed to reload status %s: %w", id, err)
		}
		if err := mergeStatus(ctx, b, existing, entity); err != nil {
			return StatusResult{}, err
		}
		return StatusResult{Status: existing, AuthorCreated: authorCreated}, nil
	}

	if err := createStatusChildren(ctx, b, st, entity); err != nil {
		return StatusResult{}, err
	}

	flags := []struct {
		kind graph.StatusRelation
		flag *bool
	}{
		{graph.StatusFavourited, entity.Favourited},
		{graph.StatusReblogged, entity.Reblogged},
		{graph.StatusMuted, entity.Muted},
		{graph.StatusBookmarked, entity.Bookmarked},
		{graph.StatusPinned, entity.Pinned},
	}
	for _, f := range flags {
		if f.flag == nil || !*f.flag {
			continue
		}
		if err := setStatusMember(ctx, b, st, f.kind, true); err != nil {
			return StatusResult{}, err
		}
	}

	b.record(KindStatus, func(s *Stats) { s.Inserts++ })
	b.cache.Put(KindStatus, b.domain, id, st)
	b.logger.Debug("Created node", kindField(KindStatus), idField(id))

	return StatusResult{Status: st, Created: true, AuthorCreated: authorCreated}, nil
}

// createStatusChildren inserts the owned children of a new status.
func createStatusChildren(ctx context.Context, b *Batch, st *graph.Status, entity mastodon.Status) error {
	if app := entity.Application; app != nil {
		row := &graph.Application{StatusID: st.ID, Name: app.Name, Website: deref(app.Website)}
		if err := b.store.Insert(ctx, row); err != nil {
			return err
		}
	}

	if len(entity.Mentions) > 0 {
		mentions := make([]graph.Mention, len(entity.Mentions))
		for i, m := range entity.Mentions {
			mentions[i] = graph.Mention{
				StatusID: st.ID,
				Position: i,
				RemoteID: m.ID.String(),
				Username: m.Username,
				Acct:     m.Acct,
				URL:      m.URL,
			}
		}
		if err := b.store.Insert(ctx, &mentions); err != nil {
			return err
		}
	}

	if len(entity.Emojis) > 0 {
		emojis := make([]graph.Emoji, len(entity.Emojis))
		for i, e := range entity.Emojis {
			emojis[i] = graph.Emoji{
				StatusID:        st.ID,
				Position:        i,
				Shortcode:       e.Shortcode,
				URL:             e.URL,
				StaticURL:       e.StaticURL,
				VisibleInPicker: e.VisibleInPicker,
				Category:        deref(e.Category),
			}
		}
		if err := b.store.Insert(ctx, &emojis); err != nil {
			return err
		}
	}

	for i, t := range entity.Tags {
		tag, _, err := ReconcileTag(ctx, b, t)
		if err != nil {
			return fmt.Errorf("failed to reconcile tag %s: %w", t.Name, err)
		}
		if _, err := b.store.InsertIfAbsent(ctx, &graph.StatusTag{StatusID: st.ID, TagID: tag.ID, Position: i}); err != nil {
			return err
		}
	}

	if len(entity.MediaAttachments) > 0 {
		attachments := make([]graph.Attachment, len(entity.MediaAttachments))
		for i, a := range entity.MediaAttachments {
			attachments[i] = graph.Attachment{
				StatusID:    st.ID,
				Position:    i,
				RemoteID:    a.ID.String(),
				Type:        a.Type,
				URL:         deref(a.URL),
				PreviewURL:  a.PreviewURL,
				RemoteURL:   deref(a.RemoteURL),
				TextURL:     deref(a.TextURL),
				Meta:        []byte(a.Meta),
				Description: deref(a.Description),
				Blurhash:    deref(a.Blurhash),
			}
		}
		if err := b.store.Insert(ctx, &attachments); err != nil {
			return err
		}
	}

	return nil
}

// mergeStatus applies entity to an existing status when the batch is newer. A stale
// batch leaves the status, its poll and its author untouched.
func mergeStatus(ctx context.Context, b *Batch, st *graph.Status, entity mastodon.Status) error {
	id := st.RemoteID
	if !b.newer(st.UpdatedAt) {
		b.record(KindStatus, func(s *Stats) { s.Stale++ })
		b.cache.Put(KindStatus, b.domain, id, st)
		b.logger.Debug("Skipped stale status", idField(id))
		return nil
	}

	if entity.Poll != nil && st.PollID != nil {
		poll, err := store.First[graph.Poll](ctx, b.store, "id = ?", *st.PollID)
		if err != nil {
			return fmt.Errorf("failed to load poll of status %s: %w", id, err)
		}
		if err := mergePoll(ctx, b, poll, *entity.Poll); err != nil {
			return err
		}
	}

	changes := map[string]any{}
	if st.FavouritesCount != entity.FavouritesCount {
		st.FavouritesCount = entity.FavouritesCount
		changes["favourites_count"] = st.FavouritesCount
	}
	if st.RepliesCount != entity.RepliesCount {
		st.RepliesCount = entity.RepliesCount
		changes["replies_count"] = st.RepliesCount
	}
	if st.ReblogsCount != entity.ReblogsCount {
		st.ReblogsCount = entity.ReblogsCount
		changes["reblogs_count"] = st.ReblogsCount
	}

	flags := []struct {
		kind graph.StatusRelation
		flag *bool
	}{
		{graph.StatusFavourited, entity.Favourited},
		{graph.StatusReblogged, entity.Reblogged},
		{graph.StatusMuted, entity.Muted},
		{graph.StatusBookmarked, entity.Bookmarked},
	}
	for _, f := range flags {
		if f.flag == nil {
			continue
		}
		if err := setStatusMember(ctx, b, st, f.kind, *f.flag); err != nil {
			return err
		}
	}

	st.UpdatedAt = b.observedAt
	changes["updated_at"] = st.UpdatedAt
	if err := b.store.Update(ctx, st, changes); err != nil {
		return err
	}

	if _, _, err := ReconcileUser(ctx, b, entity.Account); err != nil {
		return fmt.Errorf("failed to merge author of %s: %w", id, err)
	}

	b.record(KindStatus, func(s *Stats) { s.Merges++ })
	b.cache.Put(KindStatus, b.domain, id, st)
	return nil
}

func setStatusMember(ctx context.Context, b *Batch, st *graph.Status, kind graph.StatusRelation, present bool) error {
	if b.viewer == nil {
		return nil
	}
	edge := &graph.StatusMember{StatusID: st.ID, UserID: b.viewer.ID, Kind: kind}
	return store.SetMember(ctx, b.store, edge, present)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

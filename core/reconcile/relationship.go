package reconcile

import (
	"context"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"

	"go.uber.org/zap"
)

// ReconcileRelationship applies rel between the batch viewer and subject. The viewer's
// edges toward subject are always written; subject's following and blocking edges
// toward the viewer only when rel carries followed_by and blocked_by.
//
// It is a no-op for the viewer's own account and when the viewer was already updated
// at or after this batch by another batch.
func ReconcileRelationship(ctx context.Context, b *Batch, rel mastodon.Relationship, subject *graph.User) (bool, error) {
	viewer := b.viewer
	if viewer == nil {
		return false, ErrViewerRequired
	}
	if subject.ID == viewer.ID {
		return false, nil
	}
	if !b.newer(viewer.UpdatedAt) && !b.stampedByBatch(viewer) {
		b.record(KindUser, func(s *Stats) { s.Stale++ })
		return false, nil
	}

	edges := []struct {
		kind    graph.RelationKind
		present *bool
	}{
		{graph.RelationFollowing, &rel.Following},
		{graph.RelationFollowRequested, &rel.Requested},
		{graph.RelationEndorsed, rel.Endorsed},
		{graph.RelationMuting, &rel.Muting},
		{graph.RelationBlocking, &rel.Blocking},
		{graph.RelationDomainBlocking, &rel.DomainBlocking},
	}
	for _, e := range edges {
		if e.present == nil {
			continue
		}
		if err := setRelation(ctx, b, viewer, subject, e.kind, *e.present); err != nil {
			return false, err
		}
	}

	b.stampUser(viewer)
	if err := b.store.Save(ctx, viewer); err != nil {
		return false, err
	}

	if rel.FollowedBy == nil && rel.BlockedBy == nil {
		return true, nil
	}

	if rel.FollowedBy != nil {
		if err := setRelation(ctx, b, subject, viewer, graph.RelationFollowing, *rel.FollowedBy); err != nil {
			return false, err
		}
	}
	if rel.BlockedBy != nil {
		if err := setRelation(ctx, b, subject, viewer, graph.RelationBlocking, *rel.BlockedBy); err != nil {
			return false, err
		}
	}

	// The subject's profile may already be newer than this batch.
	if b.newer(subject.UpdatedAt) {
		b.stampUser(subject)
		if err := b.store.Save(ctx, subject); err != nil {
			return false, err
		}
	}
	return true, nil
}

// HasRelation reports whether from holds kind toward to.
func HasRelation(ctx context.Context, s *store.Store, from, to *graph.User, kind graph.RelationKind) (bool, error) {
	return store.HasMember(ctx, s, &graph.UserRelation{UserID: from.ID, TargetID: to.ID, Kind: kind})
}

func setRelation(ctx context.Context, b *Batch, from, to *graph.User, kind graph.RelationKind, present bool) error {
	edge := &graph.UserRelation{UserID: from.ID, TargetID: to.ID, Kind: kind}
	if err := store.SetMember(ctx, b.store, edge, present); err != nil {
		return err
	}
	b.logger.Debug("Relation set",
		zap.String("from", from.RemoteID),
		zap.String("to", to.RemoteID),
		zap.String("relation", string(kind)),
		zap.Bool("present", present))
	return nil
}

package reconcile

import (
	"context"
	"testing"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/graph/graphtest"
	"mastodon-sync/core/mastodon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePoll(t *testing.T) {
	poll := mastodon.Poll{
		ID:         "p1",
		Multiple:   true,
		VotesCount: 5,
		Voted:      boolPtr(true),
		OwnVotes:   []int{0, 2},
		Options: []mastodon.PollOption{
			{Title: "a", VotesCount: intPtr(2)},
			{Title: "b", VotesCount: intPtr(1)},
			{Title: "c", VotesCount: intPtr(2)},
		},
	}

	t.Run("CreateWithViewerVotes", func(t *testing.T) {
		e, db := setupEngine(t)
		seedViewer(t, e)

		runBatch(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, func(ctx context.Context, b *Batch) error {
			p, created, err := ReconcilePoll(ctx, b, poll)
			require.NoError(t, err)
			assert.True(t, created)
			assert.True(t, p.Multiple)
			return nil
		})

		assert.EqualValues(t, 3, graphtest.Count(t, db, &graph.PollOption{}))
		assert.EqualValues(t, 2, graphtest.Count(t, db, &graph.PollOptionVote{}))
		assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.PollVote{}))
	})

	t.Run("WithoutViewer", func(t *testing.T) {
		e, db := setupEngine(t)

		runBatch(t, e, BatchOptions{ObservedAt: t1}, func(ctx context.Context, b *Batch) error {
			_, _, err := ReconcilePoll(ctx, b, poll)
			return err
		})

		assert.EqualValues(t, 3, graphtest.Count(t, db, &graph.PollOption{}))
		assert.EqualValues(t, 0, graphtest.Count(t, db, &graph.PollOptionVote{}))
		assert.EqualValues(t, 0, graphtest.Count(t, db, &graph.PollVote{}))
	})

	t.Run("Stale", func(t *testing.T) {
		e, db := setupEngine(t)

		runBatch(t, e, BatchOptions{ObservedAt: t2}, func(ctx context.Context, b *Batch) error {
			_, _, err := ReconcilePoll(ctx, b, poll)
			return err
		})

		older := poll
		older.VotesCount = 1
		runBatch(t, e, BatchOptions{ObservedAt: t1}, func(ctx context.Context, b *Batch) error {
			_, _, err := ReconcilePoll(ctx, b, older)
			require.NoError(t, err)
			assert.Equal(t, 1, b.Stats(KindPoll).Stale)
			return nil
		})

		var p graph.Poll
		require.NoError(t, db.Take(&p).Error)
		assert.Equal(t, 5, p.VotesCount)
	})
	t.Run("OptionVotesFollowOwnVotesWithoutVoted", func(t *testing.T) {
		e, db := setupEngine(t)
		seedViewer(t, e)

		first := poll
		first.OwnVotes = []int{0}
		runBatch(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, func(ctx context.Context, b *Batch) error {
			_, _, err := ReconcilePoll(ctx, b, first)
			return err
		})

		second := poll
		second.Voted = nil
		second.OwnVotes = []int{1}
		runBatch(t, e, BatchOptions{ObservedAt: t2, ViewerID: "v"}, func(ctx context.Context, b *Batch) error {
			_, created, err := ReconcilePoll(ctx, b, second)
			assert.False(t, created)
			return err
		})

		var votes []graph.PollOptionVote
		require.NoError(t, db.Find(&votes).Error)
		require.Len(t, votes, 1)

		var option graph.PollOption
		require.NoError(t, db.Take(&option, votes[0].PollOptionID).Error)
		assert.Equal(t, 1, option.Index)

		// The poll-level vote is left alone when voted is absent.
		assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.PollVote{}))
	})
}

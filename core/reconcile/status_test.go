package reconcile

import (
	"context"
	"encoding/json"
	"testing"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/graph/graphtest"
	"mastodon-sync/core/mastodon"
	"mastodon-sync/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func reconcileStatuses(t *testing.T, e *Engine, opts BatchOptions, statuses ...mastodon.Status) (Stats, map[Kind]Stats) {
	t.Helper()
	perKind := map[Kind]Stats{}
	total := runBatch(t, e, opts, func(ctx context.Context, b *Batch) error {
		for _, s := range statuses {
			if _, err := ReconcileStatus(ctx, b, s); err != nil {
				return err
			}
		}
		for _, k := range []Kind{KindUser, KindStatus, KindPoll, KindTag} {
			perKind[k] = b.Stats(k)
		}
		return nil
	})
	return total, perKind
}

func members(t *testing.T, db *gorm.DB, remoteID string, kind graph.StatusRelation) []string {
	t.Helper()
	st := loadStatus(t, db, remoteID)
	users, err := StatusMembers(context.Background(), store.New(db), &st, kind)
	require.NoError(t, err)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.RemoteID)
	}
	return ids
}

func seedViewer(t *testing.T, e *Engine) {
	t.Helper()
	seedUsers(t, e, account("v", "viewer"))
}

func TestReconcileStatusCreate(t *testing.T) {
	e, db := setupEngine(t)
	seedViewer(t, e)

	s := status("100", account("1", "alice"))
	s.URL = strPtr("https://mastodon.social/@alice/100")
	s.Language = strPtr("en")
	s.Application = &mastodon.Application{Name: "Ivory", Website: strPtr("https://tapbots.com")}
	s.Mentions = []mastodon.Mention{{ID: "2", Username: "bob", Acct: "bob@b.social"}}
	s.Emojis = []mastodon.Emoji{{Shortcode: "blobcat", URL: "https://x/blobcat.png"}}
	s.Tags = []mastodon.Tag{{Name: "swift", URL: "https://mastodon.social/tags/swift"}}
	s.MediaAttachments = []mastodon.Attachment{{
		ID:         "900",
		Type:       "image",
		PreviewURL: "https://x/small.png",
		Meta:       json.RawMessage(`{"original":{"width":640,"height":480}}`),
	}}
	s.Favourited = boolPtr(true)
	s.Bookmarked = boolPtr(false)

	runBatch(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, func(ctx context.Context, b *Batch) error {
		res, err := ReconcileStatus(ctx, b, s)
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.True(t, res.AuthorCreated)
		return nil
	})

	st := loadStatus(t, db, "100")
	assert.Equal(t, "https://mastodon.social/@alice/100", st.URL)
	assert.Equal(t, "en", st.Language)
	assert.Equal(t, loadUser(t, db, "1").ID, st.AuthorID)
	assert.Nil(t, st.ReblogOfID)
	assert.True(t, t1.Equal(st.UpdatedAt))

	var app graph.Application
	require.NoError(t, db.Where("status_id = ?", st.ID).Take(&app).Error)
	assert.Equal(t, "Ivory", app.Name)
	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.Mention{}))
	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.Emoji{}))
	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.StatusTag{}))

	var att graph.Attachment
	require.NoError(t, db.Where("status_id = ?", st.ID).Take(&att).Error)
	assert.JSONEq(t, `{"original":{"width":640,"height":480}}`, string(att.Meta))

	assert.Equal(t, []string{"v"}, members(t, db, "100", graph.StatusFavourited))
	assert.Empty(t, members(t, db, "100", graph.StatusBookmarked))
}

func TestReconcileStatusFavouritedScenario(t *testing.T) {
	e, db := setupEngine(t)
	seedViewer(t, e)

	s := status("100", account("1", "alice"))
	s.Favourited = boolPtr(true)
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, s)
	assert.Equal(t, []string{"v"}, members(t, db, "100", graph.StatusFavourited))

	s.Favourited = boolPtr(false)
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t2, ViewerID: "v"}, s)
	assert.Empty(t, members(t, db, "100", graph.StatusFavourited))
}

func TestReconcileStatusIdempotent(t *testing.T) {
	e, db := setupEngine(t)

	s := status("100", account("1", "alice"))
	s.FavouritesCount = 3
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, s)

	s.FavouritesCount = 30
	s.Account.DisplayName = "renamed"
	_, perKind := reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, s)

	assert.Equal(t, 1, perKind[KindStatus].Stale)
	assert.Equal(t, 3, loadStatus(t, db, "100").FavouritesCount)
	assert.Equal(t, "alice", loadUser(t, db, "1").DisplayName)
}

func TestReconcileStatusMonotonic(t *testing.T) {
	e, db := setupEngine(t)
	seedViewer(t, e)

	s := status("100", account("1", "alice"))
	s.RepliesCount = 5
	s.Poll = &mastodon.Poll{
		ID:         "p1",
		VotesCount: 4,
		Voted:      boolPtr(true),
		OwnVotes:   []int{0},
		Options: []mastodon.PollOption{
			{Title: "yes", VotesCount: intPtr(3)},
			{Title: "no", VotesCount: intPtr(1)},
		},
	}
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t2, ViewerID: "v"}, s)

	s.RepliesCount = 1
	s.Account.DisplayName = "older"
	s.Poll.VotesCount = 1
	s.Poll.Voted = boolPtr(false)
	s.Poll.Options[0].VotesCount = intPtr(0)
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, s)

	st := loadStatus(t, db, "100")
	assert.Equal(t, 5, st.RepliesCount)
	assert.True(t, t2.Equal(st.UpdatedAt))
	assert.Equal(t, "alice", loadUser(t, db, "1").DisplayName)

	var poll graph.Poll
	require.NoError(t, db.Take(&poll).Error)
	assert.Equal(t, 4, poll.VotesCount)
	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.PollVote{}))

	var yes graph.PollOption
	require.NoError(t, db.Where("poll_id = ? AND option_index = ?", poll.ID, 0).Take(&yes).Error)
	require.NotNil(t, yes.VotesCount)
	assert.Equal(t, 3, *yes.VotesCount)
}

func TestReconcileStatusMerge(t *testing.T) {
	e, db := setupEngine(t)
	seedViewer(t, e)

	s := status("100", account("1", "alice"))
	s.Poll = &mastodon.Poll{
		ID:         "p1",
		VotesCount: 1,
		Options: []mastodon.PollOption{
			{Title: "yes", VotesCount: intPtr(1)},
			{Title: "no", VotesCount: intPtr(0)},
		},
	}
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, s)

	s.FavouritesCount = 7
	s.ReblogsCount = 2
	s.Bookmarked = boolPtr(true)
	s.Account.DisplayName = "Alice"
	s.Poll.VotesCount = 3
	s.Poll.Voted = boolPtr(true)
	s.Poll.OwnVotes = []int{1}
	s.Poll.Options[1].VotesCount = intPtr(2)
	_, perKind := reconcileStatuses(t, e, BatchOptions{ObservedAt: t2, ViewerID: "v"}, s)
	assert.Equal(t, 1, perKind[KindStatus].Merges)

	st := loadStatus(t, db, "100")
	assert.Equal(t, 7, st.FavouritesCount)
	assert.Equal(t, 2, st.ReblogsCount)
	assert.True(t, t2.Equal(st.UpdatedAt))
	assert.Equal(t, []string{"v"}, members(t, db, "100", graph.StatusBookmarked))
	assert.Equal(t, "Alice", loadUser(t, db, "1").DisplayName)

	var poll graph.Poll
	require.NoError(t, db.Take(&poll).Error)
	assert.Equal(t, 3, poll.VotesCount)

	options, err := store.Find[graph.PollOption](context.Background(), store.New(db), "option_index", "poll_id = ?", poll.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, 2, *options[1].VotesCount)

	var votes []graph.PollOptionVote
	require.NoError(t, db.Find(&votes).Error)
	require.Len(t, votes, 1)
	assert.Equal(t, options[1].ID, votes[0].PollOptionID)
	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.PollVote{}))
}

func TestReconcileStatusBatchDedup(t *testing.T) {
	e, db := setupEngine(t)

	alice := account("1", "alice")
	origin := status("300", alice)
	boost := status("200", alice)
	boost.Reblog = &origin

	_, perKind := reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, status("100", alice), boost)

	users := perKind[KindUser]
	assert.Equal(t, 1, users.Inserts)
	assert.Equal(t, 2, users.Hits)
	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.User{}))
	assert.EqualValues(t, 3, graphtest.Count(t, db, &graph.Status{}))
}

func TestReconcileStatusReblogIdempotent(t *testing.T) {
	e, db := setupEngine(t)

	origin := status("300", account("2", "bob"))
	boost := status("200", account("1", "alice"))
	boost.Reblog = &origin

	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, boost, boost)
	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, boost)

	assert.EqualValues(t, 2, graphtest.Count(t, db, &graph.Status{}))

	outer, inner := loadStatus(t, db, "200"), loadStatus(t, db, "300")
	require.NotNil(t, outer.ReblogOfID)
	assert.Equal(t, inner.ID, *outer.ReblogOfID)
	assert.Nil(t, inner.ReblogOfID)

	var reblogs int64
	require.NoError(t, db.Model(&graph.Status{}).Where("reblog_of_id = ?", inner.ID).Count(&reblogs).Error)
	assert.EqualValues(t, 1, reblogs)
}

func TestReconcileStatusNestedReblogMerge(t *testing.T) {
	boostOf := func(favourites int) mastodon.Status {
		origin := status("300", account("2", "bob"))
		origin.FavouritesCount = favourites
		boost := status("200", account("1", "alice"))
		boost.Reblog = &origin
		return boost
	}

	t.Run("Newer", func(t *testing.T) {
		e, db := setupEngine(t)

		reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, boostOf(3))
		_, perKind := reconcileStatuses(t, e, BatchOptions{ObservedAt: t2}, boostOf(42))
		assert.Equal(t, 2, perKind[KindStatus].Merges)

		inner := loadStatus(t, db, "300")
		assert.Equal(t, 42, inner.FavouritesCount)
		assert.True(t, t2.Equal(inner.UpdatedAt))
		assert.EqualValues(t, 2, graphtest.Count(t, db, &graph.Status{}))
	})

	t.Run("Stale", func(t *testing.T) {
		e, db := setupEngine(t)

		reconcileStatuses(t, e, BatchOptions{ObservedAt: t2}, boostOf(3))
		_, perKind := reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, boostOf(42))
		assert.Zero(t, perKind[KindStatus].Merges)

		inner := loadStatus(t, db, "300")
		assert.Equal(t, 3, inner.FavouritesCount)
		assert.True(t, t2.Equal(inner.UpdatedAt))
	})
}

func TestReconcileStatusReplyIsSoft(t *testing.T) {
	e, db := setupEngine(t)

	parent := status("100", account("1", "alice"))
	reply := status("101", account("2", "bob"))
	replyTo := mastodon.ID("100")
	reply.InReplyToID = &replyTo

	orphan := status("102", account("2", "bob"))
	missing := mastodon.ID("999")
	orphan.InReplyToID = &missing

	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, parent, reply, orphan)

	got := loadStatus(t, db, "101")
	require.NotNil(t, got.ReplyToID)
	assert.Equal(t, loadStatus(t, db, "100").ID, *got.ReplyToID)

	got = loadStatus(t, db, "102")
	assert.Nil(t, got.ReplyToID)
	assert.Equal(t, "999", got.InReplyToRemoteID)
}

func TestReconcileStatusSharedTag(t *testing.T) {
	e, db := setupEngine(t)

	tag := mastodon.Tag{Name: "swift", URL: "https://mastodon.social/tags/swift"}
	a := status("100", account("1", "alice"))
	a.Tags = []mastodon.Tag{tag}
	b := status("101", account("2", "bob"))
	b.Tags = []mastodon.Tag{tag, tag}

	reconcileStatuses(t, e, BatchOptions{ObservedAt: t1}, a, b)

	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.Tag{}))
	assert.EqualValues(t, 2, graphtest.Count(t, db, &graph.StatusTag{}))
}

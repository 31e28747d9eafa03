package reconcile

import (
	"context"
	"testing"
	"time"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/graph/graphtest"
	"mastodon-sync/core/mastodon"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const domain = "mastodon.social"

var (
	t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func setupEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	db := graphtest.Open(t)
	return NewEngine(db, Config{HistoryWindow: 7, SeedSubscriptions: true}, zap.NewNop()), db
}

func runBatch(t *testing.T, e *Engine, opts BatchOptions, fn func(ctx context.Context, b *Batch) error) Stats {
	t.Helper()
	if opts.Domain == "" {
		opts.Domain = domain
	}
	stats, err := e.Run(context.Background(), opts, fn)
	require.NoError(t, err)
	return stats
}

func boolPtr(v bool) *bool {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func account(id, username string) mastodon.Account {
	return mastodon.Account{
		ID:             mastodon.ID(id),
		Username:       username,
		Acct:           username,
		DisplayName:    username,
		CreatedAt:      t0.Add(-24 * time.Hour),
		URL:            "https://" + domain + "/@" + username,
		FollowersCount: 1,
	}
}

func status(id string, author mastodon.Account) mastodon.Status {
	return mastodon.Status{
		ID:         mastodon.ID(id),
		URI:        "https://" + domain + "/statuses/" + id,
		CreatedAt:  t0.Add(-time.Minute),
		Account:    author,
		Content:    "<p>toot " + id + "</p>",
		Visibility: "public",
	}
}

func loadUser(t *testing.T, db *gorm.DB, remoteID string) graph.User {
	t.Helper()
	var u graph.User
	require.NoError(t, db.Where("domain = ? AND remote_id = ?", domain, remoteID).Take(&u).Error)
	return u
}

func loadStatus(t *testing.T, db *gorm.DB, remoteID string) graph.Status {
	t.Helper()
	var st graph.Status
	require.NoError(t, db.Where("domain = ? AND remote_id = ?", domain, remoteID).Take(&st).Error)
	return st
}

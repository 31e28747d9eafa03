package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"mastodon-sync/core/graph"
	"mastodon-sync/core/graph/graphtest"
	"mastodon-sync/core/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestNormalize(t *testing.T) {
	in := time.Date(2024, 5, 1, 14, 0, 0, 123_456_789, time.FixedZone("CEST", 2*3600))
	out := Normalize(in)

	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, 123_000_000, out.Nanosecond())
	assert.True(t, out.Equal(time.Date(2024, 5, 1, 12, 0, 0, 123_000_000, time.UTC)))
}

func TestRun(t *testing.T) {
	t.Run("DomainRequired", func(t *testing.T) {
		e, _ := setupEngine(t)
		_, err := e.Run(context.Background(), BatchOptions{}, func(ctx context.Context, b *Batch) error {
			return nil
		})
		assert.ErrorContains(t, err, "domain is required")
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		e, db := setupEngine(t)
		boom := errors.New("boom")

		_, err := e.Run(context.Background(), BatchOptions{Domain: domain, ObservedAt: t0}, func(ctx context.Context, b *Batch) error {
			if _, _, err := ReconcileUser(ctx, b, account("1", "alice")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.EqualValues(t, 0, graphtest.Count(t, db, &graph.User{}))
	})

	t.Run("ResolvesViewer", func(t *testing.T) {
		e, _ := setupEngine(t)
		runBatch(t, e, BatchOptions{ObservedAt: t0}, func(ctx context.Context, b *Batch) error {
			_, _, err := ReconcileUser(ctx, b, account("v", "viewer"))
			return err
		})

		runBatch(t, e, BatchOptions{ObservedAt: t1, ViewerID: "v"}, func(ctx context.Context, b *Batch) error {
			require.NotNil(t, b.Viewer())
			assert.Equal(t, "viewer", b.Viewer().Username)
			assert.True(t, t1.Equal(b.ObservedAt()))
			return nil
		})
	})

	t.Run("UnknownViewer", func(t *testing.T) {
		e, _ := setupEngine(t)
		runBatch(t, e, BatchOptions{ObservedAt: t0, ViewerID: "v"}, func(ctx context.Context, b *Batch) error {
			assert.Nil(t, b.Viewer())

			// Reconciling the viewer's own account makes it the batch viewer.
			_, _, err := ReconcileUser(ctx, b, account("v", "viewer"))
			require.NoError(t, err)
			assert.NotNil(t, b.Viewer())
			return nil
		})
	})

	t.Run("QueryErrorAbortsBatch", func(t *testing.T) {
		db, mock := setupMockDB(t)
		e := NewEngine(db, Config{}, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errors.New("lock wait timeout"))
		mock.ExpectRollback()

		_, err := e.Run(context.Background(), BatchOptions{Domain: domain, ObservedAt: t0}, func(ctx context.Context, b *Batch) error {
			_, _, err := ReconcileUser(ctx, b, account("1", "alice"))
			return err
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lock wait timeout")
		assert.NotErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertRaceMergesIntoWinner(t *testing.T) {
	e, db := setupEngine(t)

	runBatch(t, e, BatchOptions{ObservedAt: t1}, func(ctx context.Context, b *Batch) error {
		// Find misses, but the row appears before the insert, as if written by a
		// concurrent batch.
		calls := 0
		node, created, err := Upsert(ctx, b, Policy[graph.Tag]{
			Kind:   KindTag,
			Domain: domain,
			ID:     "go",
			Find: func(ctx context.Context) (*graph.Tag, error) {
				calls++
				if calls == 1 {
					require.NoError(t, b.Store().DB().Create(&graph.Tag{Domain: domain, Name: "go", URL: "winner"}).Error)
					return nil, store.ErrNotFound
				}
				return store.First[graph.Tag](ctx, b.Store(), "domain = ? AND name = ?", domain, "go")
			},
			Construct: func() *graph.Tag {
				return &graph.Tag{Domain: domain, Name: "go", URL: "loser"}
			},
			Merge: func(ctx context.Context, tag *graph.Tag) (bool, error) {
				return false, nil
			},
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "winner", node.URL)
		assert.Equal(t, 1, b.Stats(KindTag).Stale)
		return nil
	})

	assert.EqualValues(t, 1, graphtest.Count(t, db, &graph.Tag{}))
}

// Package graphtest opens migrated in-memory graph databases for tests.
package graphtest

import (
	"context"
	"testing"

	"mastodon-sync/core/database"
	"mastodon-sync/core/graph"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a fresh sqlite in-memory database with every graph table migrated.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, graph.Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Count returns the number of rows of model.
func Count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

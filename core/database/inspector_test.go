package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE tags (id INTEGER PRIMARY KEY, name TEXT NOT NULL, url TEXT)").Error
	require.NoError(t, err)

	ctx := context.Background()

	columns, err := GetTableColumns(ctx, db, "tags")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}
	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "text", colMap["name"].Type)
	assert.False(t, colMap["name"].Nullable)
	assert.True(t, colMap["url"].Nullable)

	// PRAGMA table_info returns nothing for an unknown table.
	cols, err := GetTableColumns(ctx, db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE histories (id INTEGER PRIMARY KEY, uses INTEGER)").Error)

	missing, err := MissingColumns(context.Background(), db, "histories", []string{"uses", "id", "day", "accounts"})
	require.NoError(t, err)
	assert.Equal(t, []string{"accounts", "day"}, missing)

	_, err = MissingColumns(context.Background(), nil, "histories", nil)
	assert.Error(t, err)
}

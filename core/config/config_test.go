package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mastodon-sync", cfg.Storage.Bucket)
	assert.Equal(t, 7, cfg.Sync.HistoryWindow)
	assert.True(t, cfg.Sync.SeedSubscriptions)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "responses", cfg.Archive.Prefix)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SYNC_HISTORY_WINDOW", "14")
	t.Setenv("ARCHIVE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 14, cfg.Sync.HistoryWindow)
	assert.True(t, cfg.Archive.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FORMAT=console\nSTORAGE_BUCKET=replays\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_FORMAT")
		os.Unsetenv("STORAGE_BUCKET")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "replays", cfg.Storage.Bucket)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"UnknownDriver", map[string]string{"DATABASE_DRIVER": "postgres"}, "unsupported database driver"},
		{"NegativeWindow", map[string]string{"SYNC_HISTORY_WINDOW": "-1"}, "history_window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(t.TempDir())
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidate_ArchiveWithoutBucket(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Archive.Enabled = true
	cfg.Storage.Bucket = ""
	assert.ErrorContains(t, cfg.Validate(), "storage.bucket")
}

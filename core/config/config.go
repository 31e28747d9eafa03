package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mastodon-sync/core/archive"
	"mastodon-sync/core/database"
	"mastodon-sync/core/logger"
	"mastodon-sync/core/reconcile"
	"mastodon-sync/core/server"
	"mastodon-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP ingest server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage backing the archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the graph database.
	Database database.Config `mapstructure:"database"`
	// Sync holds reconcile engine settings.
	Sync reconcile.Config `mapstructure:"sync"`
	// Archive controls raw response archiving.
	Archive archive.Config `mapstructure:"archive"`
}

// LoadConfig loads configuration from environment variables and an optional .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SYNC_HISTORY_WINDOW -> sync.history_window
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the engine or the archive cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Sync.HistoryWindow < 0 {
		return fmt.Errorf("config: sync.history_window must not be negative, got %d", c.Sync.HistoryWindow)
	}
	if c.Archive.Enabled && c.Storage.Bucket == "" {
		return errors.New("config: archive.enabled requires storage.bucket")
	}
	return nil
}

// bindValues walks the struct and registers every mapstructure key with its
// `default` tag so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}

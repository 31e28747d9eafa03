// Package config provides configuration management for mastodon-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, body limit
//   - Database: graph database driver and connection details
//   - Storage: S3/MinIO credentials and bucket for the response archive
//   - Log: Logging level and format
//   - Sync: reconcile engine settings (history window, subscription seeding)
//   - Archive: whether accepted responses are archived, and under which prefix
//
// Every leaf carries a `default` tag; environment variables use the upper-cased
// dotted key with dots replaced by underscores (SYNC_HISTORY_WINDOW).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

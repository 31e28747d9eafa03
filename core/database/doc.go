// Package database handles database connections and schema inspection.
//
// It wraps GORM and configures either MySQL (production) or SQLite (local runs and
// tests) based on the application's configuration.
//
// # Connect
//
// Connect opens the dialect named by Config.Driver, applies pool settings and pings
// the server. SQLite connections are pinned to a single pooled connection so that
// ":memory:" databases survive between queries.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list of a table. The integrity feature compares
// it with the columns GORM derives from the graph models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(ctx, db, "statuses")
package database

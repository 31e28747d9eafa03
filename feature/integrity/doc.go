// Package integrity provides health checks for the sync service's infrastructure.
//
// # Checks Provided
//
//   - Structure: Checks that the storage bucket exists and holds the archive folders.
//   - Schema: Compares the live database tables with the columns GORM derives from the
//     graph models and reports missing tables and columns.
//
// The combined report is cached for a short TTL. Concurrent requests that miss the
// cache share a single build.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (supports ?refresh=true).
//   - GET /integrity/structure : Runs the structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check (supports ?fix=true to migrate).
package integrity

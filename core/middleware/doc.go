// Package middleware groups the HTTP middleware of the ingest server.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a per-request id stored in fiber locals and echoed in X-Ray-ID, which
//     logger.WithRayID attaches to request logs.
package middleware

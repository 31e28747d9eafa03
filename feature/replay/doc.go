// Package replay re-reconciles archived API responses.
//
// Envelopes are read back from the archive in observation order and dispatched
// through the same router the live endpoints use, without being archived again.
// Reconciliation is idempotent, so replaying an envelope that was already applied
// only counts it as skipped.
//
// # HTTP Endpoints
//
//   - GET /replay/:domain : Lists the archived envelope keys of a domain.
//   - POST /replay/:domain : Replays every archived envelope of a domain.
package replay

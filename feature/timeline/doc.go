// Package timeline ingests status documents (home, public and tag timelines as well
// as single statuses) into the entity graph.
//
// # HTTP Endpoints
//
//   - POST /timeline/:domain/statuses : Reconciles a timeline page (array of statuses).
//   - POST /timeline/:domain/status : Reconciles a single status.
//
// Both endpoints read the batch context from the X-Viewer-ID and X-Observed-At
// headers and answer with an ingest.Result.
package timeline

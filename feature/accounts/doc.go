// Package accounts ingests account profiles and the viewer's relationships.
//
// Profiles create or refresh users. Relationships only touch users that already
// exist in the graph: a relationship whose subject was never seen is skipped, since
// the relationships endpoint carries no profile to build the user from.
//
// # HTTP Endpoints
//
//   - POST /accounts/:domain : Reconciles one account or an array of accounts.
//   - POST /accounts/:domain/relationships : Reconciles relationships. Requires X-Viewer-ID.
package accounts

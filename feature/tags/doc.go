// Package tags ingests hashtags with their daily usage history.
//
// # HTTP Endpoints
//
//   - POST /tags/:domain : Reconciles one tag or an array of tags (trends, followed tags).
package tags

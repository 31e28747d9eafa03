// Package server holds the HTTP server configuration.
//
// The start command reads the listen port, the API key protecting the ingest
// endpoints and the maximum accepted body size from this section.
package server

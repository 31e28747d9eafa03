// Package ingest carries decoded-but-untyped API responses to the reconcile engine.
//
// An Envelope pairs a raw JSON payload with its batch context (kind, domain, viewer and
// the time the response was observed). Features register one Handler per Kind on a
// Router; the Pipeline optionally archives each envelope and then dispatches it.
package ingest

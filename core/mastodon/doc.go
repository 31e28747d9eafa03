// Package mastodon holds the decoded API entities consumed by the reconcile engine.
//
// The types mirror the JSON documents returned by a Mastodon-compatible server
// (accounts, statuses, polls, tags, relationships and push subscriptions). They are
// plain values: nothing in this package talks to the network or to the store.
//
// # Identifiers
//
// Remote identifiers are decoded into ID, which accepts both JSON strings and JSON
// numbers. Mastodon itself always sends strings, but push subscription ids and some
// forks still emit integers.
//
// # Optional fields
//
// Fields the server may omit are pointers. The reconcilers rely on the difference
// between "absent" and "false": an absent Bot flag must not clear a previously known
// value, while an explicit false must.
package mastodon

// Package archive keeps raw API responses on object storage so they can be replayed.
//
// Objects are written as <prefix>/<domain>/<observed-at>-<uuid>.json. The observed-at
// component is fixed width, so listing a domain in key order yields its envelopes in
// the order they were observed.
package archive

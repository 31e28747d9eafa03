// Package utils provides small conversion helpers shared by the entity decoders
// and the HTTP handlers.
//
// Mastodon-compatible servers are not consistent about JSON types: hashtag history
// counters arrive as strings, push subscription ids as numbers, and query flags as
// "true"/"1". The helpers here normalize those values without failing the decode.
package utils

// Package graph defines the persistent object graph as GORM models.
//
// Nodes with a remote identity (User, Status, Poll, Tag, Setting, Subscription) carry a
// composite unique index over their identity columns, so the database itself rejects
// duplicates and the store can insert with ON CONFLICT DO NOTHING.
//
// References between nodes are stored as keys (AuthorID, ReblogOfID, ReplyToID, PollID)
// rather than embedded structs. Statuses form a self-referential graph, and keys keep
// loading explicit and cycle free.
//
// Per-viewer sets (favouritedBy, votedBy, following, ...) are rows in membership tables
// keyed by (owner, user, kind). Owned children (Application, Mention, Emoji, Attachment)
// hang off their status by StatusID and are never shared between statuses.
package graph

package graph

import "time"

// Status is a toot. Reblogs point at the reblogged status through ReblogOfID.
type Status struct {
	ID       uint   `gorm:"primaryKey"`
	Domain   string `gorm:"size:191;not null;uniqueIndex:idx_statuses_identity,priority:1"`
	RemoteID string `gorm:"size:191;not null;uniqueIndex:idx_statuses_identity,priority:2"`

	URI             string `gorm:"type:text"`
	URL             string `gorm:"type:text"`
	Content         string `gorm:"type:text"`
	Text            string `gorm:"type:text"`
	Visibility      string `gorm:"size:32"`
	Sensitive       bool
	SpoilerText     string `gorm:"type:text"`
	Language        string `gorm:"size:16"`
	RepliesCount    int
	ReblogsCount    int
	FavouritesCount int

	AuthorID   uint  `gorm:"not null;index"`
	ReblogOfID *uint `gorm:"index"`
	PollID     *uint

	// ReplyToID is a soft reference: set only when the target was already
	// materialized. InReplyToRemoteID keeps the raw id either way.
	ReplyToID                *uint  `gorm:"index"`
	InReplyToRemoteID        string `gorm:"size:191"`
	InReplyToAccountRemoteID string `gorm:"size:191"`

	CreatedAt time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false;index"`
	DeletedAt *time.Time `gorm:"index"`
}

// StatusRelation names a per-viewer set a status belongs to.
type StatusRelation string

const (
	StatusFavourited StatusRelation = "favourited"
	StatusReblogged  StatusRelation = "reblogged"
	StatusMuted      StatusRelation = "muted"
	StatusBookmarked StatusRelation = "bookmarked"
	StatusPinned     StatusRelation = "pinned"
)

// StatusMember puts UserID into the Kind set of StatusID (favouritedBy, pinnedBy, ...).
type StatusMember struct {
	ID       uint           `gorm:"primaryKey"`
	StatusID uint           `gorm:"not null;uniqueIndex:idx_status_members_edge,priority:1"`
	UserID   uint           `gorm:"not null;uniqueIndex:idx_status_members_edge,priority:2;index"`
	Kind     StatusRelation `gorm:"size:32;not null;uniqueIndex:idx_status_members_edge,priority:3"`
}

// StatusTag links a status to a shared Tag node, keeping the API order.
type StatusTag struct {
	ID       uint `gorm:"primaryKey"`
	StatusID uint `gorm:"not null;uniqueIndex:idx_status_tags_edge,priority:1"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_status_tags_edge,priority:2;index"`
	Position int
}

// Application is the posting client, owned by one status.
type Application struct {
	ID       uint   `gorm:"primaryKey"`
	StatusID uint   `gorm:"not null;uniqueIndex"`
	Name     string `gorm:"size:255"`
	Website  string `gorm:"type:text"`
}

// Mention is an owned child of a status.
type Mention struct {
	ID       uint   `gorm:"primaryKey"`
	StatusID uint   `gorm:"not null;index"`
	Position int
	RemoteID string `gorm:"size:191"`
	Username string `gorm:"size:255"`
	Acct     string `gorm:"size:255"`
	URL      string `gorm:"type:text"`
}

// Emoji is an owned child of a status.
type Emoji struct {
	ID              uint   `gorm:"primaryKey"`
	StatusID        uint   `gorm:"not null;index"`
	Position        int
	Shortcode       string `gorm:"size:255"`
	URL             string `gorm:"type:text"`
	StaticURL       string `gorm:"type:text"`
	VisibleInPicker bool
	Category        string `gorm:"size:255"`
}

// Attachment is an owned child of a status. Meta is the opaque JSON blob from the API.
type Attachment struct {
	ID          uint   `gorm:"primaryKey"`
	StatusID    uint   `gorm:"not null;index"`
	Position    int
	RemoteID    string `gorm:"size:191"`
	Type        string `gorm:"size:32"`
	URL         string `gorm:"type:text"`
	PreviewURL  string `gorm:"type:text"`
	RemoteURL   string `gorm:"type:text"`
	TextURL     string `gorm:"type:text"`
	Meta        []byte
	Description string `gorm:"type:text"`
	Blurhash    string `gorm:"size:255"`
}

package graph

import "time"

// User is a remote account.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Domain   string `gorm:"size:191;not null;uniqueIndex:idx_users_identity,priority:1"`
	RemoteID string `gorm:"size:191;not null;uniqueIndex:idx_users_identity,priority:2"`

	Username       string `gorm:"size:255"`
	Acct           string `gorm:"size:255"`
	DisplayName    string `gorm:"size:255"`
	Avatar         string `gorm:"type:text"`
	AvatarStatic   string `gorm:"type:text"`
	Header         string `gorm:"type:text"`
	HeaderStatic   string `gorm:"type:text"`
	Note           string `gorm:"type:text"`
	URL            string `gorm:"type:text"`
	StatusesCount  int
	FollowingCount int
	FollowersCount int
	Locked         bool
	Bot            bool
	Suspended      bool

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;index"`
}

// RelationKind names a directional edge from one user to another.
type RelationKind string

const (
	RelationFollowing       RelationKind = "following"
	RelationFollowRequested RelationKind = "follow_requested"
	RelationEndorsed        RelationKind = "endorsed"
	RelationMuting          RelationKind = "muting"
	RelationBlocking        RelationKind = "blocking"
	RelationDomainBlocking  RelationKind = "domain_blocking"
)

// UserRelation records that UserID holds Kind toward TargetID
// (UserID follows TargetID, UserID blocks TargetID, ...).
type UserRelation struct {
	ID       uint         `gorm:"primaryKey"`
	UserID   uint         `gorm:"not null;uniqueIndex:idx_user_relations_edge,priority:1"`
	TargetID uint         `gorm:"not null;uniqueIndex:idx_user_relations_edge,priority:2;index"`
	Kind     RelationKind `gorm:"size:32;not null;uniqueIndex:idx_user_relations_edge,priority:3"`
}

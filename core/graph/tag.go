package graph

import "time"

// Tag is a hashtag shared by every status that uses it.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	Domain string `gorm:"size:191;not null;uniqueIndex:idx_tags_identity,priority:1"`
	Name   string `gorm:"size:191;not null;uniqueIndex:idx_tags_identity,priority:2"`
	URL    string `gorm:"type:text"`

	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// History is one slot of a tag's usage window. Position orders the window oldest-first
// as established when the tag was created.
type History struct {
	ID       uint `gorm:"primaryKey"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_histories_slot,priority:1"`
	Position int  `gorm:"not null;uniqueIndex:idx_histories_slot,priority:2"`
	Day      time.Time
	Uses     int
	Accounts int
}

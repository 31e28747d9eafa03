package graph

import "time"

// Poll belongs to the status that carries it.
type Poll struct {
	ID       uint   `gorm:"primaryKey"`
	Domain   string `gorm:"size:191;not null;uniqueIndex:idx_polls_identity,priority:1"`
	RemoteID string `gorm:"size:191;not null;uniqueIndex:idx_polls_identity,priority:2"`

	ExpiresAt   *time.Time
	Expired     bool
	Multiple    bool
	VotesCount  int
	VotersCount *int

	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// PollOption is keyed by its position within the poll.
type PollOption struct {
	ID         uint   `gorm:"primaryKey"`
	PollID     uint   `gorm:"not null;uniqueIndex:idx_poll_options_index,priority:1"`
	Index      int    `gorm:"column:option_index;not null;uniqueIndex:idx_poll_options_index,priority:2"`
	Title      string `gorm:"type:text"`
	VotesCount *int

	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// PollVote puts UserID into votedBy of the poll.
type PollVote struct {
	ID     uint `gorm:"primaryKey"`
	PollID uint `gorm:"not null;uniqueIndex:idx_poll_votes_edge,priority:1"`
	UserID uint `gorm:"not null;uniqueIndex:idx_poll_votes_edge,priority:2"`
}

// PollOptionVote puts UserID into votedBy of the option.
type PollOptionVote struct {
	ID           uint `gorm:"primaryKey"`
	PollOptionID uint `gorm:"not null;uniqueIndex:idx_poll_option_votes_edge,priority:1"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_poll_option_votes_edge,priority:2"`
}

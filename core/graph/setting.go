package graph

import "time"

// Setting holds the preferences of one signed-in account on one domain.
type Setting struct {
	ID       uint   `gorm:"primaryKey"`
	Domain   string `gorm:"size:191;not null;uniqueIndex:idx_settings_identity,priority:1"`
	ViewerID string `gorm:"size:191;not null;uniqueIndex:idx_settings_identity,priority:2"`

	Appearance          string `gorm:"size:32"`
	TrueBlackDarkMode   bool
	UsingDefaultBrowser bool

	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// Subscription is a push subscription of a Setting, one per policy.
type Subscription struct {
	ID        uint   `gorm:"primaryKey"`
	SettingID uint   `gorm:"not null;uniqueIndex:idx_subscriptions_policy,priority:1"`
	Policy    string `gorm:"size:32;not null;uniqueIndex:idx_subscriptions_policy,priority:2"`

	RemoteID  string `gorm:"size:191;index"`
	Endpoint  string `gorm:"type:text"`
	ServerKey string `gorm:"type:text"`

	ActivatedAt time.Time `gorm:"index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// SubscriptionAlerts is the alert selection owned by one Subscription.
type SubscriptionAlerts struct {
	ID             uint `gorm:"primaryKey"`
	SubscriptionID uint `gorm:"not null;uniqueIndex"`
	Favourite      bool
	Follow         bool
	Reblog         bool
	Mention        bool
	Poll           bool

	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

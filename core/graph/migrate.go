package graph

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Models returns every model of the graph in creation order.
func Models() []any {
	return []any{
		&User{},
		&UserRelation{},
		&Poll{},
		&PollOption{},
		&PollVote{},
		&PollOptionVote{},
		&Tag{},
		&History{},
		&Status{},
		&StatusMember{},
		&StatusTag{},
		&Application{},
		&Mention{},
		&Emoji{},
		&Attachment{},
		&Setting{},
		&Subscription{},
		&SubscriptionAlerts{},
	}
}

// Migrate creates or updates every graph table and its unique indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate graph: %w", err)
	}
	return nil
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a user's commitment of capital to a fund. At most one
// subscription per (user, fund) pair may be active at a time; the store
// enforces this with a partial unique index. Cancelled rows are retained.
type Subscription struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	FundID              uuid.UUID `gorm:"type:uuid;not null;index;column:fund_id" json:"fund_id"`
	Status              string    `gorm:"not null;column:status" json:"status"`
	NotificationChannel string    `gorm:"column:notification_channel" json:"notification_channel,omitempty"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

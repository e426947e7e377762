package types

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRecord is an immutable audit entry for a subscription lifecycle
// transition. One record is appended per transition; records are never
// updated or deleted.
type TransactionRecord struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriptionID      uuid.UUID `gorm:"type:uuid;not null;index;column:subscription_id" json:"subscription_id"`
	Action              string    `gorm:"not null;column:action" json:"action"`
	NotificationChannel string    `gorm:"column:notification_channel" json:"notification_channel"`
	Timestamp           time.Time `gorm:"not null;index;column:timestamp" json:"timestamp"`
}

func (TransactionRecord) TableName() string {
	return "transaction_history"
}

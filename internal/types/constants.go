package types

import "fmt"

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// NoChannel is the sentinel recorded on a transaction when the subscription
// never carried a notification channel.
const NoChannel = "sin_canal"

// ParseNotificationChannel resolves a requested channel name. An empty value
// defaults to email. Unknown values are rejected here, before any dispatch is
// built.
func ParseNotificationChannel(raw string) (NotificationChannel, error) {
	switch NotificationChannel(raw) {
	case "":
		return ChannelEmail, nil
	case ChannelEmail:
		return ChannelEmail, nil
	case ChannelSMS:
		return ChannelSMS, nil
	default:
		return "", fmt.Errorf("notification method %q not supported", raw)
	}
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	FundStatusActive   = "active"
	FundStatusInactive = "inactive"
)

const (
	TransactionActionCreated   = "created"
	TransactionActionCancelled = "cancelled"
)

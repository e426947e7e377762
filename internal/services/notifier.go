package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/fondos-backend/internal/clients/redis"
	"github.com/yungbote/fondos-backend/internal/clients/twilio"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/types"
)

// EmailSender and SMSSender are the delivery capabilities the notifier needs.
// The sendgrid and twilio clients satisfy them.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to string, body string) (*twilio.Message, error)
}

// SubscriptionNotifier dispatches lifecycle notifications. Dispatch is
// best-effort: by the time it runs the subscription state is already
// committed, so failures are logged and never reach the caller.
type SubscriptionNotifier interface {
	SubscriptionCreated(ctx context.Context, user *types.User, fund *types.Fund, channel types.NotificationChannel)
	// Deliver performs the actual send for one resolved message. The bus
	// forwarder calls this on consumed messages.
	Deliver(ctx context.Context, msg types.NotificationMessage)
}

type subscriptionNotifier struct {
	log            *logger.Logger
	bus            redis.NotificationBus
	email          EmailSender
	sms            SMSSender
	smsCountryCode string
}

func NewSubscriptionNotifier(baseLog *logger.Logger, bus redis.NotificationBus, email EmailSender, sms SMSSender, smsCountryCode string) SubscriptionNotifier {
	if strings.TrimSpace(smsCountryCode) == "" {
		smsCountryCode = "+57"
	}
	return &subscriptionNotifier{
		log:            baseLog.With("service", "SubscriptionNotifier"),
		bus:            bus,
		email:          email,
		sms:            sms,
		smsCountryCode: smsCountryCode,
	}
}

func (n *subscriptionNotifier) SubscriptionCreated(ctx context.Context, user *types.User, fund *types.Fund, channel types.NotificationChannel) {
	if n == nil || user == nil || fund == nil {
		return
	}

	msg, err := n.buildMessage(user, fund, channel)
	if err != nil {
		n.log.Warn("Skipping subscription notification", "error", err)
		return
	}

	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err == nil {
			return
		} else {
			n.log.Warn("Notification bus publish failed, delivering directly", "error", err)
		}
	}

	go n.Deliver(context.Background(), msg)
}

func (n *subscriptionNotifier) buildMessage(user *types.User, fund *types.Fund, channel types.NotificationChannel) (types.NotificationMessage, error) {
	subject := "Subscription Created Successfully"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour subscription to %s has been created successfully.\n\nBest regards,\nYour Company",
		user.Name, fund.Name,
	)

	var to string
	switch channel {
	case types.ChannelEmail:
		to = strings.TrimSpace(user.Email)
		if to == "" {
			return types.NotificationMessage{}, fmt.Errorf("user %s has no email address", user.ID)
		}
	case types.ChannelSMS:
		if user.PhoneNumber == nil || strings.TrimSpace(*user.PhoneNumber) == "" {
			return types.NotificationMessage{}, fmt.Errorf("user %s has no phone number", user.ID)
		}
		to = strings.TrimSpace(*user.PhoneNumber)
		if !strings.HasPrefix(to, "+") {
			to = n.smsCountryCode + to
		}
	default:
		return types.NotificationMessage{}, fmt.Errorf("notification method %q not supported", channel)
	}

	return types.NotificationMessage{
		Channel: channel,
		To:      to,
		Subject: subject,
		Body:    body,
	}, nil
}

func (n *subscriptionNotifier) Deliver(ctx context.Context, msg types.NotificationMessage) {
	if n == nil {
		return
	}

	switch msg.Channel {
	case types.ChannelEmail:
		if n.email == nil {
			n.log.Warn("Email sender not configured, dropping notification", "subject", msg.Subject)
			return
		}
		if err := n.email.SendEmail(ctx, msg.To, msg.Subject, msg.Body); err != nil {
			n.log.Error("Failed to send email notification", "error", err)
			return
		}
		n.log.Info("Email notification sent", "subject", msg.Subject)
	case types.ChannelSMS:
		if n.sms == nil {
			n.log.Warn("SMS sender not configured, dropping notification", "subject", msg.Subject)
			return
		}
		if _, err := n.sms.SendSMS(ctx, msg.To, msg.Body); err != nil {
			n.log.Error("Failed to send SMS notification", "error", err)
			return
		}
		n.log.Info("SMS notification sent", "subject", msg.Subject)
	default:
		n.log.Warn("Dropping notification with unknown channel", "channel", string(msg.Channel))
	}
}

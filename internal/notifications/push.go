package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

var (
	// ErrUnsupportedProvider marks a provider tag we know nothing about or
	// have not implemented yet. The record stays unsent and keeps failing
	// loudly rather than being silently dropped.
	ErrUnsupportedProvider = errors.New("unsupported push provider")

	// ErrMissingProvider marks a record enqueued without a provider tag,
	// which is a programmer error.
	ErrMissingProvider = errors.New("push notification has no provider type")
)

// PushSender delivers one push record to a concrete provider. Senders never
// mutate sent state; that is the dispatcher's job.
type PushSender interface {
	Send(ctx context.Context, notification *models.PushNotification) error
}

// DelegatingPushSender routes records to a provider back-end through an
// explicit lookup table keyed by the record's provider tag.
type DelegatingPushSender struct {
	senders map[types.PushProvider]PushSender
}

func NewDelegatingPushSender(senders map[types.PushProvider]PushSender) *DelegatingPushSender {
	table := make(map[types.PushProvider]PushSender, len(senders))
	for provider, sender := range senders {
		table[provider] = sender
	}
	return &DelegatingPushSender{senders: table}
}

func (d *DelegatingPushSender) Send(ctx context.Context, notification *models.PushNotification) error {
	if notification.PushNotificationType == "" {
		return ErrMissingProvider
	}
	sender, ok := d.senders[notification.PushNotificationType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedProvider, notification.PushNotificationType)
	}
	return sender.Send(ctx, notification)
}

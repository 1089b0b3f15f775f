package notifications

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lifeblood-dev/lifeblood/internal/models"
)

// OutboxStore is the slice of the notification store the dispatcher needs.
type OutboxStore interface {
	UnsentPush(limit int) ([]models.PushNotification, error)
	UnsentWhatsApp(limit int) ([]models.WhatsAppMessage, error)
	MarkPushSent(id uint) error
	MarkWhatsAppSent(id uint) error
}

// WhatsAppDeliverer delivers one chat record.
type WhatsAppDeliverer interface {
	Send(ctx context.Context, message *models.WhatsAppMessage) error
}

const (
	// DefaultBatchSize bounds per-tick latency and memory.
	DefaultBatchSize = 100

	// DefaultSendTimeout bounds one provider call so a stuck provider cannot
	// stall the whole tick.
	DefaultSendTimeout = 10 * time.Second
)

// Dispatcher drains the outbox one tick at a time. All dispatch state lives
// in the sent flag of each record, so a crash mid-batch just leaves records
// unsent for the next tick. Records that keep failing are retried every tick
// with no cutoff: a donation alert must never be silently dropped.
type Dispatcher struct {
	outbox      OutboxStore
	whatsapp    WhatsAppDeliverer
	push        PushSender
	batchSize   int
	sendTimeout time.Duration
	logger      *zap.Logger
}

func NewDispatcher(outbox OutboxStore, whatsapp WhatsAppDeliverer, push PushSender, batchSize int, sendTimeout time.Duration, logger *zap.Logger) *Dispatcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}
	return &Dispatcher{
		outbox:      outbox,
		whatsapp:    whatsapp,
		push:        push,
		batchSize:   batchSize,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// Tick processes one chat batch, then one push batch. The two channels are
// independent: a failure in one never blocks the other, and a failure on one
// record never aborts its siblings.
func (d *Dispatcher) Tick(ctx context.Context) {
	d.dispatchWhatsApp(ctx)
	d.dispatchPush(ctx)
}

func (d *Dispatcher) dispatchWhatsApp(ctx context.Context) {
	messages, err := d.outbox.UnsentWhatsApp(d.batchSize)
	if err != nil {
		d.logger.Error("Failed to fetch unsent WhatsApp messages", zap.Error(err))
		return
	}

	for i := range messages {
		message := &messages[i]
		if err := d.sendWithTimeout(ctx, func(sendCtx context.Context) error {
			return d.whatsapp.Send(sendCtx, message)
		}); err != nil {
			d.logger.Warn("WhatsApp delivery failed, will retry next tick",
				zap.Uint("message_id", message.ID),
				zap.Error(err))
			continue
		}
		if err := d.outbox.MarkWhatsAppSent(message.ID); err != nil {
			// The message was delivered but stays unsent; the next tick will
			// resend it, which providers must tolerate.
			d.logger.Error("Failed to mark WhatsApp message sent",
				zap.Uint("message_id", message.ID),
				zap.Error(err))
		}
	}
}

func (d *Dispatcher) dispatchPush(ctx context.Context) {
	records, err := d.outbox.UnsentPush(d.batchSize)
	if err != nil {
		d.logger.Error("Failed to fetch unsent push notifications", zap.Error(err))
		return
	}

	for i := range records {
		record := &records[i]
		if err := d.sendWithTimeout(ctx, func(sendCtx context.Context) error {
			return d.push.Send(sendCtx, record)
		}); err != nil {
			d.logger.Warn("Push delivery failed, will retry next tick",
				zap.Uint("notification_id", record.ID),
				zap.String("provider", string(record.PushNotificationType)),
				zap.Error(err))
			continue
		}
		if err := d.outbox.MarkPushSent(record.ID); err != nil {
			d.logger.Error("Failed to mark push notification sent",
				zap.Uint("notification_id", record.ID),
				zap.Error(err))
		}
	}
}

func (d *Dispatcher) sendWithTimeout(ctx context.Context, send func(context.Context) error) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()
	return send(sendCtx)
}

package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

// fakeOutbox is an in-memory OutboxStore keyed by record ID, preserving
// insertion order as creation order.
type fakeOutbox struct {
	pushes   []models.PushNotification
	messages []models.WhatsAppMessage

	fetchErr error
}

func (f *fakeOutbox) UnsentPush(limit int) ([]models.PushNotification, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.PushNotification
	for _, record := range f.pushes {
		if record.Sent {
			continue
		}
		out = append(out, record)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeOutbox) UnsentWhatsApp(limit int) ([]models.WhatsAppMessage, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.WhatsAppMessage
	for _, record := range f.messages {
		if record.Sent {
			continue
		}
		out = append(out, record)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeOutbox) MarkPushSent(id uint) error {
	for i := range f.pushes {
		if f.pushes[i].ID == id {
			f.pushes[i].Sent = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOutbox) MarkWhatsAppSent(id uint) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Sent = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOutbox) unsentPushCount() int {
	n := 0
	for _, record := range f.pushes {
		if !record.Sent {
			n++
		}
	}
	return n
}

type fakeWhatsAppDeliverer struct {
	failFor map[uint]error
	sent    []uint
}

func (f *fakeWhatsAppDeliverer) Send(_ context.Context, message *models.WhatsAppMessage) error {
	if err, ok := f.failFor[message.ID]; ok {
		return err
	}
	f.sent = append(f.sent, message.ID)
	return nil
}

type fakePushDeliverer struct {
	failFor map[uint]error
	sent    []uint
}

func (f *fakePushDeliverer) Send(_ context.Context, record *models.PushNotification) error {
	if err, ok := f.failFor[record.ID]; ok {
		return err
	}
	f.sent = append(f.sent, record.ID)
	return nil
}

func pushRecord(id uint) models.PushNotification {
	record := models.PushNotification{
		UserToken:            "token",
		Title:                "Urgent alert",
		Body:                 "Donation request at hospital City Hospital with level Urgent.",
		PushNotificationType: types.PushProviderFirebase,
	}
	record.ID = id
	return record
}

func whatsAppRecord(id uint) models.WhatsAppMessage {
	record := models.WhatsAppMessage{
		PhoneNumber:       "+962790000001",
		TemplateName:      "donation_alert",
		TemplateVariables: pq.StringArray{"URGENT", ""},
	}
	record.ID = id
	return record
}

func newTestDispatcher(outbox *fakeOutbox, whatsapp WhatsAppDeliverer, push PushSender, batchSize int) *Dispatcher {
	return NewDispatcher(outbox, whatsapp, push, batchSize, time.Second, zap.NewNop())
}

func TestTickMarksDeliveredRecordsSent(t *testing.T) {
	outbox := &fakeOutbox{
		pushes:   []models.PushNotification{pushRecord(1), pushRecord(2)},
		messages: []models.WhatsAppMessage{whatsAppRecord(10)},
	}
	whatsapp := &fakeWhatsAppDeliverer{}
	push := &fakePushDeliverer{}

	d := newTestDispatcher(outbox, whatsapp, push, 100)
	d.Tick(context.Background())

	assert.Equal(t, []uint{10}, whatsapp.sent)
	assert.Equal(t, []uint{1, 2}, push.sent)
	for _, record := range outbox.pushes {
		assert.True(t, record.Sent)
	}
	assert.True(t, outbox.messages[0].Sent)

	// A second tick finds nothing to do.
	d.Tick(context.Background())
	assert.Equal(t, []uint{10}, whatsapp.sent)
	assert.Equal(t, []uint{1, 2}, push.sent)
}

func TestFailedSendStaysUnsentAndIsRetried(t *testing.T) {
	outbox := &fakeOutbox{messages: []models.WhatsAppMessage{whatsAppRecord(1)}}
	whatsapp := &fakeWhatsAppDeliverer{failFor: map[uint]error{1: errors.New("provider down")}}

	d := newTestDispatcher(outbox, whatsapp, &fakePushDeliverer{}, 100)
	d.Tick(context.Background())

	assert.False(t, outbox.messages[0].Sent)

	// Provider recovers; the next tick picks the record up again.
	whatsapp.failFor = nil
	d.Tick(context.Background())
	assert.True(t, outbox.messages[0].Sent)
}

func TestPerRecordFailureIsolation(t *testing.T) {
	outbox := &fakeOutbox{}
	for i := uint(1); i <= 5; i++ {
		outbox.pushes = append(outbox.pushes, pushRecord(i))
	}
	push := &fakePushDeliverer{failFor: map[uint]error{3: errors.New("boom")}}

	d := newTestDispatcher(outbox, &fakeWhatsAppDeliverer{}, push, 100)
	d.Tick(context.Background())

	assert.Equal(t, []uint{1, 2, 4, 5}, push.sent)
	assert.False(t, outbox.pushes[2].Sent)
	assert.Equal(t, 1, outbox.unsentPushCount())
}

func TestChatChannelFailureDoesNotBlockPush(t *testing.T) {
	outbox := &fakeOutbox{
		pushes:   []models.PushNotification{pushRecord(1)},
		messages: []models.WhatsAppMessage{whatsAppRecord(10)},
	}
	whatsapp := &fakeWhatsAppDeliverer{failFor: map[uint]error{10: errors.New("timeout")}}
	push := &fakePushDeliverer{}

	d := newTestDispatcher(outbox, whatsapp, push, 100)
	d.Tick(context.Background())

	assert.False(t, outbox.messages[0].Sent)
	assert.True(t, outbox.pushes[0].Sent)
}

func TestBatchCeilingLeavesRemainderForNextTick(t *testing.T) {
	outbox := &fakeOutbox{}
	for i := uint(1); i <= 150; i++ {
		outbox.pushes = append(outbox.pushes, pushRecord(i))
	}
	push := &fakePushDeliverer{}

	d := newTestDispatcher(outbox, &fakeWhatsAppDeliverer{}, push, 100)
	d.Tick(context.Background())

	require.Len(t, push.sent, 100)
	// Oldest first: the first hundred records, in creation order.
	assert.Equal(t, uint(1), push.sent[0])
	assert.Equal(t, uint(100), push.sent[99])
	assert.Equal(t, 50, outbox.unsentPushCount())

	d.Tick(context.Background())
	assert.Len(t, push.sent, 150)
	assert.Equal(t, 0, outbox.unsentPushCount())
}

func TestUnsupportedProviderRecordDoesNotStopSiblings(t *testing.T) {
	apns := pushRecord(1)
	apns.PushNotificationType = types.PushProviderAPNS
	outbox := &fakeOutbox{pushes: []models.PushNotification{apns, pushRecord(2)}}

	firebase := &fakePushSender{}
	delegating := NewDelegatingPushSender(map[types.PushProvider]PushSender{
		types.PushProviderFirebase: firebase,
	})

	d := newTestDispatcher(outbox, &fakeWhatsAppDeliverer{}, delegating, 100)
	d.Tick(context.Background())

	assert.False(t, outbox.pushes[0].Sent)
	assert.True(t, outbox.pushes[1].Sent)
}

func TestFetchErrorSkipsTickQuietly(t *testing.T) {
	outbox := &fakeOutbox{fetchErr: errors.New("db down")}

	d := newTestDispatcher(outbox, &fakeWhatsAppDeliverer{}, &fakePushDeliverer{}, 100)

	// Must not panic; nothing to assert except that records are untouched.
	d.Tick(context.Background())
}

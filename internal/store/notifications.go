package store

import (
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/models"
)

// NotificationStore is the durable outbox: unsent records go in at alert
// creation, the dispatcher drains them oldest-first and flips sent exactly
// once per delivered record.
type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) UnsentPush(limit int) ([]models.PushNotification, error) {
	var records []models.PushNotification
	err := s.db.
		Where("sent = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *NotificationStore) UnsentWhatsApp(limit int) ([]models.WhatsAppMessage, error) {
	var records []models.WhatsAppMessage
	err := s.db.
		Where("sent = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *NotificationStore) MarkPushSent(id uint) error {
	return s.db.Model(&models.PushNotification{}).
		Where("id = ?", id).
		Update("sent", true).Error
}

func (s *NotificationStore) MarkWhatsAppSent(id uint) error {
	return s.db.Model(&models.WhatsAppMessage{}).
		Where("id = ?", id).
		Update("sent", true).Error
}

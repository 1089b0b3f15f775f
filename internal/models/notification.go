package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/types"
)

// PushNotification is an outbox record for the push channel. The payload is a
// snapshot taken at enqueue time; later volunteer profile changes never touch
// queued records.
type PushNotification struct {
	gorm.Model

	UserToken            string             `gorm:"not null"`
	Title                string             `gorm:"not null"`
	Body                 string             `gorm:"not null"`
	PushNotificationType types.PushProvider `gorm:"type:varchar(50)"`
	Sent                 bool               `gorm:"not null;default:false;index"`
}

// WhatsAppMessage is an outbox record for the chat channel. Template
// variables are substituted positionally by the provider.
type WhatsAppMessage struct {
	gorm.Model

	PhoneNumber       string         `gorm:"not null"`
	TemplateName      string         `gorm:"not null"`
	TemplateVariables pq.StringArray `gorm:"type:text[]"`
	Sent              bool           `gorm:"not null;default:false;index"`
}

package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/types"
)

type Volunteer struct {
	gorm.Model

	UUID                string `gorm:"uniqueIndex;not null"`
	PhoneNumber         string `gorm:"uniqueIndex;not null"` // E.164
	VerifiedPhoneNumber bool   `gorm:"not null;default:false"`
	VerifiedDonor       bool   `gorm:"not null;default:false"`
	LastDonationDate    *time.Time

	PushNotificationToken string
	PushNotificationType  types.PushProvider `gorm:"type:varchar(50)"`

	MinimumSeverity      int            `gorm:"not null;default:0"`
	NotificationChannels pq.StringArray `gorm:"type:text[]"`

	// Relationships
	AlertableHospitals []Hospital `gorm:"many2many:volunteer_hospital_mappings;"`
}

// ReceivesChannel reports whether the volunteer has the given notification
// channel enabled.
func (v *Volunteer) ReceivesChannel(channel types.NotificationChannel) bool {
	for _, c := range v.NotificationChannels {
		if c == string(channel) {
			return true
		}
	}
	return false
}

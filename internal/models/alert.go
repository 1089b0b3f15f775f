package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/types"
)

// Alert is immutable once created except for its fulfilment date.
type Alert struct {
	gorm.Model

	AlertLevel     types.AlertLevel `gorm:"type:varchar(20);not null;index"`
	DoctorMessage  string
	FulfilmentDate *time.Time
	HospitalID     uint `gorm:"not null;index"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

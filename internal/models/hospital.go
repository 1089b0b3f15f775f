package models

import "gorm.io/gorm"

type Hospital struct {
	gorm.Model

	UUID string `gorm:"uniqueIndex;not null"`
	Name string `gorm:"not null"`
}

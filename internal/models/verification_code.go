package models

import "gorm.io/gorm"

// PhoneVerificationCode expires 10 minutes after creation; expiry is checked
// at verification time, nothing is cleaned up here.
type PhoneVerificationCode struct {
	gorm.Model

	PhoneNumber      string `gorm:"not null;index"`
	VerificationCode string `gorm:"not null"`
}

package models

import "gorm.io/gorm"

const (
	RoleDoctor    = "doctor"
	RoleVolunteer = "volunteer"
)

// AuthAccount keeps credentials separate from the volunteer profile; doctors
// have an account but no volunteer row.
type AuthAccount struct {
	gorm.Model

	PhoneNumber  string `gorm:"uniqueIndex;not null"`
	UserUUID     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
}

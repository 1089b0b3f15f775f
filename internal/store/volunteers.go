package store

import (
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/models"
)

type VolunteerStore struct {
	db *gorm.DB
}

func NewVolunteerStore(db *gorm.DB) *VolunteerStore {
	return &VolunteerStore{db: db}
}

// ByHospitalAndSeverity returns volunteers subscribed to the hospital whose
// minimum severity threshold admits the given level. Only the hospital
// mapping is joined; notification history is never loaded here.
func (s *VolunteerStore) ByHospitalAndSeverity(hospitalID uint, level int) ([]models.Volunteer, error) {
	var volunteers []models.Volunteer
	err := s.db.
		Joins("JOIN volunteer_hospital_mappings vhm ON vhm.volunteer_id = volunteers.id").
		Where("vhm.hospital_id = ? AND volunteers.minimum_severity <= ?", hospitalID, level).
		Find(&volunteers).Error
	if err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (s *VolunteerStore) All() ([]models.Volunteer, error) {
	var volunteers []models.Volunteer
	if err := s.db.Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (s *VolunteerStore) ByUUID(uuid string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	err := s.db.Preload("AlertableHospitals").Where("uuid = ?", uuid).First(&volunteer).Error
	if err != nil {
		return nil, err
	}
	return &volunteer, nil
}

func (s *VolunteerStore) ByPhoneNumber(phoneNumber string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	err := s.db.Where("phone_number = ?", phoneNumber).First(&volunteer).Error
	if err != nil {
		return nil, err
	}
	return &volunteer, nil
}

package store

import (
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/models"
)

type HospitalStore struct {
	db *gorm.DB
}

func NewHospitalStore(db *gorm.DB) *HospitalStore {
	return &HospitalStore{db: db}
}

// ByUUID returns gorm.ErrRecordNotFound untouched so callers can map it to a
// not-found response.
func (s *HospitalStore) ByUUID(uuid string) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := s.db.Where("uuid = ?", uuid).First(&hospital).Error; err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (s *HospitalStore) All() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	if err := s.db.Order("name ASC").Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

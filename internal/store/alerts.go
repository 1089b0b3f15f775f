package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/models"
)

type AlertStore struct {
	db *gorm.DB
}

func NewAlertStore(db *gorm.DB) *AlertStore {
	return &AlertStore{db: db}
}

// CreateWithOutbox persists the alert and its notification records in one
// transaction: either everything is durable or nothing is. Each channel is
// written as a single batch insert.
func (s *AlertStore) CreateWithOutbox(alert *models.Alert, pushes []models.PushNotification, messages []models.WhatsAppMessage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Hospital").Create(alert).Error; err != nil {
			return err
		}
		if len(pushes) > 0 {
			if err := tx.Create(&pushes).Error; err != nil {
				return err
			}
		}
		if len(messages) > 0 {
			if err := tx.Create(&messages).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns a page of alerts ordered newest-first, optionally restricted
// to unfulfilled ones, together with the total row count.
func (s *AlertStore) List(pageSize, pageNumber int, activeOnly bool) ([]models.Alert, int64, error) {
	query := s.db.Model(&models.Alert{})
	if activeOnly {
		query = query.Where("fulfilment_date IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []models.Alert
	err := query.
		Preload("Hospital").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(pageNumber * pageSize).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (s *AlertStore) ByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.Preload("Hospital").First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// Fulfil sets the fulfilment date once. Returns the number of rows updated;
// zero means the alert is missing or already fulfilled.
func (s *AlertStore) Fulfil(id uint, at time.Time) (int64, error) {
	result := s.db.Model(&models.Alert{}).
		Where("id = ? AND fulfilment_date IS NULL", id).
		Update("fulfilment_date", at)
	return result.RowsAffected, result.Error
}

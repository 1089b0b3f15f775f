package alerts

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/notifications"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

var (
	ErrHospitalNotFound = errors.New("hospital does not exist")
	ErrAlertNotFound    = errors.New("alert does not exist")
	ErrAlreadyFulfilled = errors.New("alert is already fulfilled")
)

// HospitalDirectory resolves a hospital reference.
type HospitalDirectory interface {
	ByUUID(uuid string) (*models.Hospital, error)
}

// AlertRepository persists alerts together with their outbox records.
type AlertRepository interface {
	CreateWithOutbox(alert *models.Alert, pushes []models.PushNotification, messages []models.WhatsAppMessage) error
	List(pageSize, pageNumber int, activeOnly bool) ([]models.Alert, int64, error)
	ByID(id uint) (*models.Alert, error)
	Fulfil(id uint, at time.Time) (int64, error)
}

type CreateAlertInput struct {
	HospitalUUID  string
	AlertLevel    types.AlertLevel
	DoctorMessage string
}

// Service orchestrates alert creation: resolve the hospital, compute the
// listener set, snapshot per-channel outbox records, then persist the alert
// and both batches atomically. Delivery is somebody else's problem; the
// dispatcher picks the records up on its own schedule.
type Service struct {
	hospitals HospitalDirectory
	resolver  *ListenerResolver
	store     AlertRepository
	logger    *zap.Logger
}

func NewService(hospitals HospitalDirectory, resolver *ListenerResolver, store AlertRepository, logger *zap.Logger) *Service {
	return &Service{
		hospitals: hospitals,
		resolver:  resolver,
		store:     store,
		logger:    logger,
	}
}

func (s *Service) CreateAlert(input CreateAlertInput) (*models.Alert, error) {
	if !input.AlertLevel.Valid() {
		return nil, fmt.Errorf("unknown alert level %q", input.AlertLevel)
	}

	hospital, err := s.hospitals.ByUUID(input.HospitalUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: uuid %s", ErrHospitalNotFound, input.HospitalUUID)
		}
		return nil, fmt.Errorf("failed to resolve hospital: %w", err)
	}

	alert := &models.Alert{
		AlertLevel:    input.AlertLevel,
		DoctorMessage: input.DoctorMessage,
		HospitalID:    hospital.ID,
		Hospital:      *hospital,
	}

	listeners, err := s.resolver.FindListeners(alert)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alert listeners: %w", err)
	}

	pushes := notifications.BuildPushNotifications(alert, listeners)
	messages := notifications.BuildWhatsAppMessages(alert, listeners)

	if err := s.store.CreateWithOutbox(alert, pushes, messages); err != nil {
		return nil, fmt.Errorf("failed to persist alert: %w", err)
	}

	s.logger.Info("Alert created",
		zap.Uint("alert_id", alert.ID),
		zap.String("alert_level", string(alert.AlertLevel)),
		zap.String("hospital", hospital.Name),
		zap.Int("listeners", len(listeners)),
		zap.Int("push_records", len(pushes)),
		zap.Int("whatsapp_records", len(messages)))

	return alert, nil
}

func (s *Service) ListAlerts(pageSize, pageNumber int, activeOnly bool) ([]models.Alert, int64, error) {
	return s.store.List(pageSize, pageNumber, activeOnly)
}

// FulfilAlert stamps the fulfilment date exactly once.
func (s *Service) FulfilAlert(id uint, at time.Time) error {
	updated, err := s.store.Fulfil(id, at)
	if err != nil {
		return fmt.Errorf("failed to fulfil alert: %w", err)
	}
	if updated > 0 {
		return nil
	}

	if _, err := s.store.ByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		return fmt.Errorf("failed to load alert: %w", err)
	}
	return ErrAlreadyFulfilled
}

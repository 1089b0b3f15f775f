package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/db"
	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/notifications"
	"github.com/lifeblood-dev/lifeblood/internal/types"
	"github.com/lifeblood-dev/lifeblood/internal/utils"
)

const verificationCodeTTL = 10 * time.Minute

type RegisterVolunteerRequest struct {
	PhoneNumber       string   `json:"phone_number" binding:"required"`
	Password          string   `json:"password" binding:"required,min=8"`
	SelectedHospitals []string `json:"selected_hospitals" binding:"required,min=1"`
}

type VerifyPhoneRequest struct {
	PhoneNumber      string `json:"phone_number" binding:"required"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

type UpdateVolunteerSettingsRequest struct {
	MinimumSeverity      *int     `json:"minimum_severity"`
	NotificationChannels []string `json:"notification_channels"`
	SelectedHospitals    []string `json:"selected_hospitals"`
}

type VolunteerResponse struct {
	UUID                 string             `json:"uuid"`
	PhoneNumber          string             `json:"phone_number"`
	VerifiedPhoneNumber  bool               `json:"verified_phone_number"`
	MinimumSeverity      int                `json:"minimum_severity"`
	NotificationChannels []string           `json:"notification_channels"`
	AlertableHospitals   []HospitalResponse `json:"alertable_hospitals"`
}

func toVolunteerResponse(volunteer models.Volunteer) VolunteerResponse {
	hospitals := make([]HospitalResponse, 0, len(volunteer.AlertableHospitals))
	for _, hospital := range volunteer.AlertableHospitals {
		hospitals = append(hospitals, HospitalResponse{UUID: hospital.UUID, Name: hospital.Name})
	}
	return VolunteerResponse{
		UUID:                 volunteer.UUID,
		PhoneNumber:          volunteer.PhoneNumber,
		VerifiedPhoneNumber:  volunteer.VerifiedPhoneNumber,
		MinimumSeverity:      volunteer.MinimumSeverity,
		NotificationChannels: []string(volunteer.NotificationChannels),
		AlertableHospitals:   hospitals,
	}
}

// RegisterVolunteer creates the volunteer, their auth account, a phone
// verification code, and the outbox record that delivers the code over
// WhatsApp, all in one transaction.
func RegisterVolunteer(ctx *gin.Context) {
	var req RegisterVolunteerRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phoneNumber, err := utils.FormatPhoneNumber(req.PhoneNumber, phoneRegion)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to format phone number '" + req.PhoneNumber + "'"})
		return
	}

	var existing models.Volunteer

	if err := db.DB.Where("phone_number = ?", phoneNumber).First(&existing).Error; err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is already registered"})
		return
	}

	hospitals, err := resolveHospitals(req.SelectedHospitals)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register volunteer"})
		return
	}

	volunteer := models.Volunteer{
		UUID:                 uuid.NewString(),
		PhoneNumber:          phoneNumber,
		MinimumSeverity:      types.MinimumSeverity,
		NotificationChannels: pq.StringArray(types.AllChannels()),
		AlertableHospitals:   hospitals,
	}

	code := models.PhoneVerificationCode{
		PhoneNumber:      phoneNumber,
		VerificationCode: uuid.NewString(),
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&volunteer).Error; err != nil {
			return err
		}
		if err := tx.Create(&code).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.WhatsAppMessage{
			PhoneNumber:       phoneNumber,
			TemplateName:      notifications.VerificationCodeTemplate,
			TemplateVariables: pq.StringArray{code.VerificationCode},
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuthAccount{
			PhoneNumber:  phoneNumber,
			UserUUID:     volunteer.UUID,
			PasswordHash: string(passwordHash),
			Role:         models.RoleVolunteer,
		}).Error
	})

	if err != nil {
		zap.L().Error("Failed to register volunteer", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register volunteer"})
		return
	}

	ctx.JSON(http.StatusCreated, toVolunteerResponse(volunteer))
}

func VerifyPhone(ctx *gin.Context) {
	var req VerifyPhoneRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phoneNumber, err := utils.FormatPhoneNumber(req.PhoneNumber, phoneRegion)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to format phone number '" + req.PhoneNumber + "'"})
		return
	}

	var code models.PhoneVerificationCode

	err = db.DB.Where("phone_number = ? AND verification_code = ?", phoneNumber, req.VerificationCode).
		First(&code).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Verification code invalid or expired"})
		} else {
			zap.L().Error("Failed to look up verification code", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify phone number"})
		}
		return
	}

	if time.Since(code.CreatedAt) > verificationCodeTTL {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired. Please request a new one."})
		return
	}

	result := db.DB.Model(&models.Volunteer{}).
		Where("phone_number = ?", phoneNumber).
		Update("verified_phone_number", true)

	if result.Error != nil || result.RowsAffected == 0 {
		zap.L().Error("Verification code found but volunteer missing",
			zap.String("phone_number", phoneNumber),
			zap.Error(result.Error))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify phone number"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func GetCurrentVolunteer(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var volunteer models.Volunteer

	err = db.DB.Preload("AlertableHospitals").Where("uuid = ?", user.UUID).First(&volunteer).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		} else {
			zap.L().Error("Failed to load volunteer", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve volunteer"})
		}
		return
	}

	ctx.JSON(http.StatusOK, toVolunteerResponse(volunteer))
}

func UpdateVolunteerSettings(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateVolunteerSettingsRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MinimumSeverity != nil && (*req.MinimumSeverity < 0 || *req.MinimumSeverity > types.AlertLevelLifeOrDeath.Level()) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minimum severity"})
		return
	}

	for _, channel := range req.NotificationChannels {
		if channel != string(types.ChannelPushNotifications) && channel != string(types.ChannelWhatsAppMessages) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown notification channel '" + channel + "'"})
			return
		}
	}

	var volunteer models.Volunteer

	if err := db.DB.Where("uuid = ?", user.UUID).First(&volunteer).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if req.MinimumSeverity != nil {
			volunteer.MinimumSeverity = *req.MinimumSeverity
		}
		if req.NotificationChannels != nil {
			volunteer.NotificationChannels = pq.StringArray(req.NotificationChannels)
		}
		if err := tx.Save(&volunteer).Error; err != nil {
			return err
		}
		if req.SelectedHospitals != nil {
			hospitals, err := resolveHospitals(req.SelectedHospitals)
			if err != nil {
				return err
			}
			if err := tx.Model(&volunteer).Association("AlertableHospitals").Replace(hospitals); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		zap.L().Error("Failed to update volunteer settings", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	GetCurrentVolunteer(ctx)
}

func resolveHospitals(hospitalUUIDs []string) ([]models.Hospital, error) {
	hospitals := make([]models.Hospital, 0, len(hospitalUUIDs))
	for _, hospitalUUID := range hospitalUUIDs {
		var hospital models.Hospital
		if err := db.DB.Where("uuid = ?", hospitalUUID).First(&hospital).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("Hospital with uuid [" + hospitalUUID + "] does not exist")
			}
			return nil, err
		}
		hospitals = append(hospitals, hospital)
	}
	return hospitals, nil
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lifeblood-dev/lifeblood/internal/alerts"
	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

type CreateAlertRequest struct {
	HospitalUUID  string `json:"hospital_uuid" binding:"required"`
	AlertLevel    string `json:"alert_level" binding:"required"`
	DoctorMessage string `json:"doctor_message"`
}

type HospitalResponse struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type AlertResponse struct {
	ID             uint             `json:"id"`
	AlertLevel     types.AlertLevel `json:"alert_level"`
	DoctorMessage  string           `json:"doctor_message"`
	CreationDate   time.Time        `json:"creation_date"`
	FulfilmentDate *time.Time       `json:"fulfilment_date"`
	Hospital       HospitalResponse `json:"hospital"`
}

type PageAlertResponse struct {
	Content       []AlertResponse `json:"content"`
	Number        int             `json:"number"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"total_elements"`
}

func toAlertResponse(alert models.Alert) AlertResponse {
	return AlertResponse{
		ID:             alert.ID,
		AlertLevel:     alert.AlertLevel,
		DoctorMessage:  alert.DoctorMessage,
		CreationDate:   alert.CreatedAt,
		FulfilmentDate: alert.FulfilmentDate,
		Hospital: HospitalResponse{
			UUID: alert.Hospital.UUID,
			Name: alert.Hospital.Name,
		},
	}
}

func CreateAlert(ctx *gin.Context) {
	var req CreateAlertRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := types.ParseAlertLevel(req.AlertLevel)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := alertService.CreateAlert(alerts.CreateAlertInput{
		HospitalUUID:  req.HospitalUUID,
		AlertLevel:    level,
		DoctorMessage: req.DoctorMessage,
	})

	if err != nil {
		if errors.Is(err, alerts.ErrHospitalNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
		} else {
			zap.L().Error("Failed to create alert", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
		}
		return
	}

	response := toAlertResponse(*alert)
	BroadcastAlertCreated(response)
	ctx.JSON(http.StatusCreated, response)
}

func GetAlerts(ctx *gin.Context) {
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	if err != nil || pageSize < 1 || pageSize > 100 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page_size"})
		return
	}

	pageNumber, err := strconv.Atoi(ctx.DefaultQuery("page_number", "0"))

	if err != nil || pageNumber < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page_number"})
		return
	}

	activeOnly := ctx.Query("active_only") == "true"

	alertsList, total, err := alertService.ListAlerts(pageSize, pageNumber, activeOnly)

	if err != nil {
		zap.L().Error("Failed to list alerts", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
		return
	}

	content := make([]AlertResponse, 0, len(alertsList))
	for _, alert := range alertsList {
		content = append(content, toAlertResponse(alert))
	}

	ctx.JSON(http.StatusOK, PageAlertResponse{
		Content:       content,
		Number:        pageNumber,
		Size:          pageSize,
		TotalElements: total,
	})
}

func FulfilAlert(ctx *gin.Context) {
	alertID, err := strconv.ParseUint(ctx.Param("alert_id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID"})
		return
	}

	err = alertService.FulfilAlert(uint(alertID), time.Now())

	if err != nil {
		switch {
		case errors.Is(err, alerts.ErrAlertNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		case errors.Is(err, alerts.ErrAlreadyFulfilled):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Alert is already fulfilled"})
		default:
			zap.L().Error("Failed to fulfil alert", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fulfil alert"})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

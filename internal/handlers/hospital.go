package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lifeblood-dev/lifeblood/db"
	"github.com/lifeblood-dev/lifeblood/internal/models"
)

func GetHospitals(ctx *gin.Context) {
	var hospitals []models.Hospital

	if err := db.DB.Order("name ASC").Find(&hospitals).Error; err != nil {
		zap.L().Error("Failed to list hospitals", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hospitals"})
		return
	}

	response := make([]HospitalResponse, 0, len(hospitals))
	for _, hospital := range hospitals {
		response = append(response, HospitalResponse{UUID: hospital.UUID, Name: hospital.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

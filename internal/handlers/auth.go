package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lifeblood-dev/lifeblood/db"
	"github.com/lifeblood-dev/lifeblood/internal/auth"
	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/utils"
)

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	UUID  string `json:"uuid"`
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phoneNumber, err := utils.FormatPhoneNumber(req.PhoneNumber, phoneRegion)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to format phone number '" + req.PhoneNumber + "'"})
		return
	}

	var account models.AuthAccount

	err = db.DB.Where("phone_number = ?", phoneNumber).First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or password"})
		} else {
			zap.L().Error("Failed to load auth account", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or password"})
		return
	}

	token, err := auth.GenerateJWT(account.UserUUID, account.PhoneNumber, account.Role)

	if err != nil {
		zap.L().Error("Failed to generate JWT", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{
		Token: token,
		Role:  account.Role,
		UUID:  account.UserUUID,
	})
}

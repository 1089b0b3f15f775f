package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lifeblood-dev/lifeblood/db"
	"github.com/lifeblood-dev/lifeblood/internal/auth"
	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

type AuthenticatedUser struct {
	UUID        string `json:"uuid"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := auth.VerifyJWT(parts[1])

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		userUUID, ok := claims["user_uuid"].(string)

		if !ok || userUUID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user UUID in token claims"})
			return
		}

		var account models.AuthAccount

		if err := db.DB.Where("user_uuid = ?", userUUID).First(&account).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			UUID:        account.UserUUID,
			PhoneNumber: account.PhoneNumber,
			Role:        account.Role,
		})
		ctx.Next()
	}
}

// RequireRole runs after AuthMiddleware and rejects callers without the given
// role.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		authenticatedUser, ok := user.(AuthenticatedUser)

		if !ok || authenticatedUser.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		ctx.Next()
	}
}

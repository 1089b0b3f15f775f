package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/lifeblood-dev/lifeblood/internal/handlers"
	"github.com/lifeblood-dev/lifeblood/internal/middleware"
	"github.com/lifeblood-dev/lifeblood/internal/models"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

const (
	alertRateLimit  = 20
	alertRateWindow = time.Minute
)

// NewRouter wires routes and middleware. redisClient may be nil, in which
// case alert creation is not rate limited.
func NewRouter(redisClient *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.AlertFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
		}

		api.GET("/hospitals", handlers.GetHospitals)

		volunteers := api.Group("/volunteers")
		{
			volunteers.POST("", handlers.RegisterVolunteer)
			volunteers.POST("/verify", handlers.VerifyPhone)
			volunteers.GET("/me", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleVolunteer), handlers.GetCurrentVolunteer)
			volunteers.PATCH("/me/settings", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleVolunteer), handlers.UpdateVolunteerSettings)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", handlers.GetAlerts)

			create := []gin.HandlerFunc{middleware.AuthMiddleware(), middleware.RequireRole(models.RoleDoctor)}
			if redisClient != nil {
				create = append(create, middleware.RateLimiter(redisClient, alertRateLimit, alertRateWindow))
			}
			create = append(create, handlers.CreateAlert)
			alerts.POST("", create...)

			alerts.PATCH("/:alert_id/fulfil", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleDoctor), handlers.FulfilAlert)
		}
	}

	return r
}

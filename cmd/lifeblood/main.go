package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lifeblood-dev/lifeblood/db"
	"github.com/lifeblood-dev/lifeblood/internal/alerts"
	"github.com/lifeblood-dev/lifeblood/internal/auth"
	"github.com/lifeblood-dev/lifeblood/internal/handlers"
	"github.com/lifeblood-dev/lifeblood/internal/notifications"
	"github.com/lifeblood-dev/lifeblood/internal/router"
	"github.com/lifeblood-dev/lifeblood/internal/scheduler"
	"github.com/lifeblood-dev/lifeblood/internal/store"
	"github.com/lifeblood-dev/lifeblood/internal/types"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, continuing with process environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logger.Fatal("Failed to initialize JWT secret", zap.Error(err))
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	dispatcher := buildDispatcher(logger)
	scheduler.Initialize(dispatcher, dispatchInterval(), logger)
	defer scheduler.Shutdown()

	alertService := alerts.NewService(
		store.NewHospitalStore(db.DB),
		alerts.NewListenerResolver(store.NewVolunteerStore(db.DB)),
		store.NewAlertStore(db.DB),
		logger,
	)
	handlers.Configure(alertService, os.Getenv("PHONE_REGION"))

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	} else {
		logger.Warn("REDIS_ADDR not set, alert creation is not rate limited")
	}

	r := router.NewRouter(redisClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		logger.Info("PORT not set, defaulting to 3000")
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("Lifeblood listening", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// buildDispatcher wires the outbox drain. The Firebase sender is optional in
// development; without it any FIREBASE record fails loudly on every tick
// instead of being dropped.
func buildDispatcher(logger *zap.Logger) *notifications.Dispatcher {
	pushSenders := make(map[types.PushProvider]notifications.PushSender)

	if credentials := os.Getenv("FIREBASE_CREDENTIALS_FILE"); credentials != "" {
		firebaseSender, err := notifications.NewFirebaseSender(context.Background(), credentials)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase sender", zap.Error(err))
		}
		pushSenders[types.PushProviderFirebase] = firebaseSender
	} else {
		logger.Warn("FIREBASE_CREDENTIALS_FILE not set, push delivery will fail until configured")
	}

	whatsappClient := notifications.NewWhatsAppClient(types.WhatsAppConfig{
		APIURL:        envOrDefault("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
		SenderPhoneID: os.Getenv("WHATSAPP_SENDER_PHONE_ID"),
		BearerToken:   os.Getenv("WHATSAPP_BEARER_TOKEN"),
		Timeout:       notifications.DefaultSendTimeout,
	})

	return notifications.NewDispatcher(
		store.NewNotificationStore(db.DB),
		whatsappClient,
		notifications.NewDelegatingPushSender(pushSenders),
		notifications.DefaultBatchSize,
		notifications.DefaultSendTimeout,
		logger,
	)
}

func dispatchInterval() time.Duration {
	if raw := os.Getenv("DISPATCH_INTERVAL_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		zap.L().Warn("Invalid DISPATCH_INTERVAL_MS, using default", zap.String("value", raw))
	}
	return 10 * time.Second
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/fondos-backend/internal/clients/redis"
	"github.com/yungbote/fondos-backend/internal/clients/sendgrid"
	"github.com/yungbote/fondos-backend/internal/clients/twilio"
	"github.com/yungbote/fondos-backend/internal/db"
	"github.com/yungbote/fondos-backend/internal/handlers"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/observability"
	"github.com/yungbote/fondos-backend/internal/repos"
	"github.com/yungbote/fondos-backend/internal/server"
	"github.com/yungbote/fondos-backend/internal/services"
	"github.com/yungbote/fondos-backend/internal/types"
	"github.com/yungbote/fondos-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "fondos-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer otelShutdown(ctx)
	}

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	fundRepo := repos.NewFundRepo(theDB, log)
	subRepo := repos.NewSubscriptionRepo(theDB, log)
	txnRepo := repos.NewTransactionRepo(theDB, log)

	// Notification channels. Missing provider credentials downgrade that
	// channel to a log line instead of blocking startup.
	log.Info("Setting up notification clients from main...")
	emailClient, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("Could not init SendGrid client, email delivery disabled", "error", err)
		emailClient = nil
	}
	smsClient, err := twilio.NewFromEnv(log)
	if err != nil {
		log.Warn("Could not init Twilio client, sms delivery disabled", "error", err)
		smsClient = nil
	}

	var bus redis.NotificationBus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err = redis.NewNotificationBus(log)
		if err != nil {
			log.Warn("Could not init Redis notification bus, delivering in-process", "error", err)
			bus = nil
		}
	}

	var email services.EmailSender
	if emailClient != nil {
		email = emailClient
	}
	var sms services.SMSSender
	if smsClient != nil {
		sms = smsClient
	}
	notifier := services.NewSubscriptionNotifier(log, bus, email, sms,
		utils.GetEnv("SMS_COUNTRY_CODE", "+57", log))

	if bus != nil {
		if err := bus.StartForwarder(ctx, func(msg types.NotificationMessage) {
			notifier.Deliver(context.Background(), msg)
		}); err != nil {
			log.Warn("Notification forwarder failed to start", "error", err)
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	userService := services.NewUserService(theDB, log, userRepo)
	fundService := services.NewFundService(theDB, log, fundRepo)
	subService := services.NewSubscriptionService(theDB, log, userRepo, fundRepo, subRepo, txnRepo, notifier)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(userService)
	fundHandler := handlers.NewFundHandler(fundService)
	subHandler := handlers.NewSubscriptionHandler(subService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		UserHandler:         userHandler,
		FundHandler:         fundHandler,
		SubscriptionHandler: subHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}

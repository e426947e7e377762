package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/fondos-backend/internal/handlers"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/utils"
)

type RouterConfig struct {
	Log                 *logger.Logger
	UserHandler         *handlers.UserHandler
	FundHandler         *handlers.FundHandler
	SubscriptionHandler *handlers.SubscriptionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("fondos-backend"))

	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", cfg.Log)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", handlers.Welcome)
	router.GET("/healthcheck", handlers.HealthCheck)

	users := router.Group("/users")
	{
		users.POST("/", cfg.UserHandler.CreateUser)
		users.GET("/", cfg.UserHandler.ListUsers)
	}

	funds := router.Group("/funds")
	{
		funds.POST("/", cfg.FundHandler.CreateFund)
		funds.GET("/", cfg.FundHandler.ListFunds)
		funds.GET("/:fund_id", cfg.FundHandler.GetFund)
	}

	subs := router.Group("/subscriptions")
	{
		subs.POST("/", cfg.SubscriptionHandler.CreateSubscription)
		subs.POST("/cancel/:subscription_id", cfg.SubscriptionHandler.CancelSubscription)
		subs.GET("/", cfg.SubscriptionHandler.ListSubscriptions)
		subs.GET("/user/:user_id", cfg.SubscriptionHandler.ListUserSubscriptions)
		subs.GET("/:user_id/transactions", cfg.SubscriptionHandler.ListUserTransactions)
	}

	return router
}

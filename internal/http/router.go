package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/srs-vsa/analytics-backend/internal/analytics"
	"github.com/srs-vsa/analytics-backend/internal/config"
	"github.com/srs-vsa/analytics-backend/internal/db"
	"github.com/srs-vsa/analytics-backend/internal/http/handlers"
	"github.com/srs-vsa/analytics-backend/internal/http/middleware"

	_ "github.com/srs-vsa/analytics-backend/docs"
)

func Router(cfg config.Config, store *db.Store, svc *analytics.Service, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Service: svc,
		Store:   store,
		Logger:  logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api/analytics")
	api.Use(middleware.Auth(cfg.AuthJWTSecret, cfg.AuthAllowedDomain, cfg.DevMode))
	{
		api.GET("/session-metrics", h.SessionMetrics)
		api.GET("/volume-trends", h.VolumeTrends)
		api.GET("/user-engagement", h.UserEngagement)
		api.GET("/user-retention", h.UserRetention)
		api.GET("/user-segmentation", h.UserSegmentation)
		api.GET("/returning-user-behavior", h.ReturningUserBehavior)
		api.GET("/agent-tool-usage", h.AgentToolUsage)
		api.GET("/time-patterns", h.TimePatterns)
		api.GET("/conversation-length", h.ConversationLength)
		api.GET("/platform-analytics", h.PlatformAnalytics)
		api.GET("/pain-point-clustering", h.PainPointClustering)
		api.GET("/query-categories", h.QueryCategories)
		api.GET("/sentiment", h.Sentiment)
		api.GET("/dashboard", h.Dashboard)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

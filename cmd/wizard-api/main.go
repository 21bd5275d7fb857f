package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/orariofacile/planner-wizard-api/api/swagger"
	"github.com/orariofacile/planner-wizard-api/internal/handler"
	internalmiddleware "github.com/orariofacile/planner-wizard-api/internal/middleware"
	"github.com/orariofacile/planner-wizard-api/internal/repository"
	"github.com/orariofacile/planner-wizard-api/internal/service"
	"github.com/orariofacile/planner-wizard-api/pkg/cache"
	"github.com/orariofacile/planner-wizard-api/pkg/config"
	"github.com/orariofacile/planner-wizard-api/pkg/logger"
	corsmiddleware "github.com/orariofacile/planner-wizard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/orariofacile/planner-wizard-api/pkg/middleware/requestid"
)

// @title Planner Wizard API
// @version 1.0.0
// @description Server-side sessions for the weekly timetable wizard, backed by the remote plan-generation service.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Without Redis the wizard still works; sessions just stop surviving
	// restarts.
	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, snapshots are memory-only", zap.Error(err))
	} else {
		redisClient = client
	}

	registry := service.NewSessionRegistry()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService(registry.Len)
	}

	snapshots := repository.NewSnapshotRepository(redisClient, logr, cfg.Sessions.SnapshotTTL)
	wizardSvc := service.NewWizardService(registry, snapshots, metrics, logr, cfg.Sessions.ShareBaseURL)
	plannerClient := service.NewPlannerClient(cfg.Planner, metrics, logr)
	planSvc := service.NewPlanService(registry, plannerClient, snapshots, logr)

	wizardHandler := handler.NewWizardHandler(wizardSvc)
	planHandler := handler.NewPlanHandler(planSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, func() bool { return redisClient != nil })

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	registerRoutes(api, wizardHandler, planHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerRoutes(api *gin.RouterGroup, wizardHandler *handler.WizardHandler, planHandler *handler.PlanHandler) {
	sessions := api.Group("/sessions")
	sessions.POST("", wizardHandler.Open)
	sessions.GET("/:id", wizardHandler.Get)
	sessions.DELETE("/:id", wizardHandler.Close)

	sessions.PUT("/:id/step1", wizardHandler.SubmitStep1)
	sessions.POST("/:id/navigate", wizardHandler.Navigate)
	sessions.PATCH("/:id/hours", wizardHandler.EditHours)
	sessions.PATCH("/:id/availability", wizardHandler.EditAvailability)

	sessions.GET("/:id/grids/hours", wizardHandler.HoursGrid)
	sessions.GET("/:id/grids/availability", wizardHandler.AvailabilityGrid)
	sessions.GET("/:id/summary", wizardHandler.Summary)

	sessions.GET("/:id/share-link", wizardHandler.ShareLink)
	sessions.GET("/:id/snapshot", wizardHandler.ExportSnapshot)
	sessions.PUT("/:id/snapshot", wizardHandler.ImportSnapshot)

	sessions.GET("/:id/documents/step1", wizardHandler.ExportStep1Document)
	sessions.PUT("/:id/documents/step1", wizardHandler.ImportStep1Document)
	sessions.GET("/:id/documents/hours", wizardHandler.ExportHoursDocument)
	sessions.PUT("/:id/documents/hours", wizardHandler.ImportHoursDocument)
	sessions.GET("/:id/documents/availability", wizardHandler.ExportAvailabilityDocument)
	sessions.PUT("/:id/documents/availability", wizardHandler.ImportAvailabilityDocument)

	sessions.PATCH("/:id/seed", wizardHandler.SetSeed)
	sessions.PATCH("/:id/method", wizardHandler.SetMethod)
	sessions.POST("/:id/reset", wizardHandler.Reset)

	sessions.POST("/:id/plan", planHandler.Generate)
	sessions.GET("/:id/plan", planHandler.LastPlan)
	sessions.GET("/:id/plan/progress", planHandler.Progress)
	sessions.POST("/:id/plan/documents/classes-pdf", planHandler.ClassesDocument)
	sessions.POST("/:id/plan/documents/professors-pdf", planHandler.ProfessorsDocument)
}

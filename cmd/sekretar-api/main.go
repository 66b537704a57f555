package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pnext5524-creator/sekretar/api/swagger"
	"github.com/pnext5524-creator/sekretar/internal/ai"
	"github.com/pnext5524-creator/sekretar/internal/handler"
	"github.com/pnext5524-creator/sekretar/internal/middleware"
	"github.com/pnext5524-creator/sekretar/internal/models"
	"github.com/pnext5524-creator/sekretar/internal/repository"
	"github.com/pnext5524-creator/sekretar/internal/service"
	"github.com/pnext5524-creator/sekretar/pkg/config"
	"github.com/pnext5524-creator/sekretar/pkg/kvstore"
	"github.com/pnext5524-creator/sekretar/pkg/logger"
	corsmiddleware "github.com/pnext5524-creator/sekretar/pkg/middleware/cors"
	reqidmiddleware "github.com/pnext5524-creator/sekretar/pkg/middleware/requestid"
)

// @title Sekretar 2.0 API
// @version 1.0.0
// @description AI-assisted drafting, compliance review, archiving and EDMS export for official correspondence
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AI.APIKey == "" {
		log.Fatal("AI_API_KEY is not set; the service cannot start without it")
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	backend, err := buildStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init persistence store", "backend", cfg.Store.Backend, "error", err)
	}

	metricsSvc := service.NewMetricsService()
	store := kvstore.NewInstrumented(backend, metricsSvc)

	archiveRepo := repository.NewArchiveRepository(store, logr)
	userRepo := repository.NewUserRepository(store, logr)

	assistant := ai.NewInstrumented(ai.NewClient(cfg.AI), metricsSvc)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "sekretar",
	})
	userSvc := service.NewUserService(userRepo, nil, logr)
	archiveSvc := service.NewArchiveService(archiveRepo, logr)
	exportSvc := service.NewExportService(archiveRepo, logr, nil, nil)

	orchestrator := service.NewOrchestratorService(assistant, archiveRepo, logr)
	reviewSvc := service.NewReviewService(assistant, orchestrator, logr)
	captureSvc := service.NewCaptureService(&service.ChunkMicrophone{MaxBytes: cfg.Capture.MaxAudioBytes}, assistant, orchestrator, logr)
	orchestrator.AttachReviewer(reviewSvc)
	orchestrator.AttachCapture(captureSvc)
	captureSvc.AttachGeneration(orchestrator)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	archiveHandler := handler.NewArchiveHandler(archiveSvc, exportSvc)
	workspaceHandler := handler.NewWorkspaceHandler(orchestrator)
	dictationHandler := handler.NewDictationHandler(captureSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc, orchestrator)
	exportHandler := handler.NewExportHandler(exportSvc, orchestrator)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/workspace", workspaceHandler.Snapshot)
		authed.PUT("/workspace/source", workspaceHandler.AttachSource)
		authed.PUT("/workspace/instruction", workspaceHandler.SetInstruction)
		authed.PUT("/workspace/draft", workspaceHandler.SetDraft)
		authed.POST("/workspace/generate", workspaceHandler.Generate)
		authed.POST("/workspace/reset", workspaceHandler.Reset)

		authed.POST("/dictation/start", dictationHandler.Start)
		authed.POST("/dictation/chunk", dictationHandler.Chunk)
		authed.POST("/dictation/stop", dictationHandler.Stop)

		authed.GET("/review", reviewHandler.Result)
		authed.POST("/review", reviewHandler.Run)
		authed.POST("/review/apply", reviewHandler.Apply)

		authed.GET("/archive", archiveHandler.List)
		authed.GET("/archive/report", archiveHandler.Report)
		authed.DELETE("/archive/:id", archiveHandler.Delete)
		authed.POST("/archive/:id/sent", archiveHandler.MarkSent)

		authed.POST("/export", exportHandler.Package)
	}

	admin := api.Group("/users")
	admin.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("", userHandler.List)
		admin.POST("", userHandler.Create)
		admin.DELETE("/:id", userHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"store_backend", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func buildStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return kvstore.NewMemory(), nil
	case config.StoreBackendFile:
		return kvstore.NewFile(cfg.Store.FileDir)
	case config.StoreBackendRedis:
		return kvstore.NewRedis(cfg.Redis)
	case config.StoreBackendPostgres:
		return kvstore.NewPostgres(cfg.Database)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tuition-adp-api/api/swagger"
	"github.com/noah-isme/tuition-adp-api/internal/handler"
	"github.com/noah-isme/tuition-adp-api/internal/middleware"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
	"github.com/noah-isme/tuition-adp-api/internal/service"
	"github.com/noah-isme/tuition-adp-api/pkg/cache"
	"github.com/noah-isme/tuition-adp-api/pkg/config"
	"github.com/noah-isme/tuition-adp-api/pkg/database"
	"github.com/noah-isme/tuition-adp-api/pkg/export"
	"github.com/noah-isme/tuition-adp-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tuition-adp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tuition-adp-api/pkg/middleware/requestid"
)

// @title Tuition ADP API
// @version 1.0.0
// @description Admin panel backend for a tuition/coaching center
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

	// the backing store is selected once at startup and never switched
	var store repository.DataStore
	if cfg.Store.UseMock {
		store = repository.NewMemoryStore(time.Now().UTC())
		logr.Info("using in-memory demo store")
	} else {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		store = repository.NewPostgresStore(db, cfg.Dues.DefaultMonthlyFee)
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	metricsSvc := service.NewMetricsService()
	snapshotSvc := service.NewSnapshotService(store, logr, metricsSvc)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Snapshots:    snapshotSvc,
		Cache:        cacheRepo,
		Metrics:      metricsSvc,
		Logger:       logr,
		CacheEnabled: cfg.Dashboard.CacheEnabled && cacheRepo != nil,
		CacheTTL:     cfg.Dashboard.CacheTTL,
	})
	duesSvc := service.NewDuesService(service.DuesServiceParams{
		Snapshots:         snapshotSvc,
		Store:             store,
		Logger:            logr,
		Metrics:           metricsSvc,
		DefaultMonthlyFee: cfg.Dues.DefaultMonthlyFee,
		AuthEnabled:       cfg.Auth.Enabled,
	})

	// every applied mutation drops the dashboard cache and re-runs the dues
	// pass under the mutating actor; the single-flight guard absorbs the
	// nested trigger from the pass's own merge
	snapshotSvc.SetMutationHook(func(ctx context.Context) {
		dashboardSvc.Invalidate(ctx)
		if _, err := duesSvc.Ensure(ctx, middleware.RoleFromContext(ctx)); err != nil {
			logr.Warn("monthly dues reconciliation failed", zap.Error(err))
		}
	})
	accessSvc := service.NewAccessService(store, logr)
	authSvc := service.NewAuthService(store, cfg.JWT, logr)
	reportSvc := service.NewReportService(snapshotSvc, export.NewPDFExporter(), logr)

	authHandler := handler.NewAuthHandler(authSvc)
	snapshotHandler := handler.NewSnapshotHandler(snapshotSvc, duesSvc, logr)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	studentHandler := handler.NewStudentHandler(snapshotSvc)
	financeHandler := handler.NewFinanceHandler(snapshotSvc)
	attendanceHandler := handler.NewAttendanceHandler(snapshotSvc)
	profileHandler := handler.NewProfileHandler(snapshotSvc)
	adminHandler := handler.NewAdminHandler(snapshotSvc)
	accessHandler := handler.NewAccessHandler(accessSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	navigationHandler := handler.NewNavigationHandler(cfg.Auth.Enabled)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc, cfg.Auth.Enabled))

	authed.GET("/snapshot", snapshotHandler.Get)
	authed.GET("/navigation", navigationHandler.Get)

	// the students area is the one surface restricted roles may use
	authed.POST("/students", studentHandler.Create)
	authed.PUT("/students/:id", studentHandler.Update)
	authed.DELETE("/students/:id", studentHandler.Delete)
	authed.POST("/attendance", attendanceHandler.Save)

	admin := authed.Group("")
	admin.Use(middleware.AdminOnly())

	admin.POST("/snapshot/refresh", snapshotHandler.Refresh)

	admin.GET("/dashboard/metrics", dashboardHandler.Metrics)
	admin.GET("/dashboard/trend", dashboardHandler.Trend)
	admin.GET("/dashboard/expenses", dashboardHandler.Expenses)
	admin.GET("/dashboard/months", dashboardHandler.Months)

	admin.POST("/finances", financeHandler.Create)
	admin.PUT("/finances/:id", financeHandler.Update)
	admin.DELETE("/finances/:id", financeHandler.Delete)
	admin.PATCH("/finances/:id/toggle-status", financeHandler.ToggleStatus)
	admin.GET("/finances/categories", financeHandler.Categories)

	admin.GET("/profile", profileHandler.Get)
	admin.PUT("/profile", profileHandler.Update)

	admin.POST("/admin/reset", adminHandler.Reset)

	admin.GET("/access/users", accessHandler.List)
	admin.POST("/access/users", accessHandler.Create)
	admin.PUT("/access/users/:id/role", accessHandler.UpdateRole)
	admin.DELETE("/access/users/:id", accessHandler.Delete)

	admin.GET("/reports/finance", reportHandler.Finance)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "mock_store", cfg.Store.UseMock)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

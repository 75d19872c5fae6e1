package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/profiremanager/pfm-api/api/swagger"
	"github.com/profiremanager/pfm-api/internal/dto"
	"github.com/profiremanager/pfm-api/internal/handler"
	"github.com/profiremanager/pfm-api/internal/middleware"
	"github.com/profiremanager/pfm-api/internal/models"
	"github.com/profiremanager/pfm-api/internal/repository"
	"github.com/profiremanager/pfm-api/internal/service"
	"github.com/profiremanager/pfm-api/pkg/cache"
	"github.com/profiremanager/pfm-api/pkg/config"
	"github.com/profiremanager/pfm-api/pkg/database"
	"github.com/profiremanager/pfm-api/pkg/jobs"
	"github.com/profiremanager/pfm-api/pkg/logger"
	corsmiddleware "github.com/profiremanager/pfm-api/pkg/middleware/cors"
	reqidmiddleware "github.com/profiremanager/pfm-api/pkg/middleware/requestid"
)

// @title ProFireManager API
// @version 1.0.0
// @description Fire station shift scheduling and roster management
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()

	// Repositories.
	employeeRepo := repository.NewEmployeeRepository(db)
	shiftTypeRepo := repository.NewShiftTypeRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	replacementRepo := repository.NewReplacementRepository(db)

	// Redis backs both the response cache and the roster run lock. Without
	// it the run lock falls back to an in-process mutex, which is only safe
	// for a single instance.
	var cacheRepo *repository.CacheRepository
	var runLocks interface {
		AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
		ReleaseLock(ctx context.Context, key string) error
	} = service.NewMemoryRunLocker()
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		runLocks = cacheRepo
	} else {
		logr.Warn("redis disabled, using in-process run locks")
	}

	// Services.
	metricsSvc := service.NewMetricsService()
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	authSvc := service.NewAuthService(employeeRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	employeeSvc := service.NewEmployeeService(employeeRepo, validate, logr)
	shiftTypeSvc := service.NewShiftTypeService(shiftTypeRepo, validate, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, employeeRepo, validate, logr)
	planningSvc := service.NewPlanningService(assignmentRepo, employeeRepo, shiftTypeRepo, validate, logr)
	replacementSvc := service.NewReplacementService(replacementRepo, assignmentRepo, validate, logr)
	schedulerSvc := service.NewSchedulerService(
		employeeRepo,
		shiftTypeRepo,
		availabilityRepo,
		assignmentRepo,
		runLocks,
		metricsSvc,
		validate,
		logr,
		service.SchedulerConfig{
			OfficerFallback: cfg.Scheduler.OfficerFallback,
			RunLockTTL:      cfg.Scheduler.RunLockTTL,
		},
	)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Employees:    employeeRepo,
		Assignments:  assignmentRepo,
		ShiftTypes:   shiftTypeRepo,
		Replacements: replacementRepo,
		Cache:        cacheSvc,
		Logger:       logr,
		Config:       service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	exportSvc := service.NewExportService(assignmentRepo, nil, nil, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background queue for async roster runs.
	runQueue := jobs.NewQueue("roster-runs", func(ctx context.Context, job jobs.Job[dto.AutoAssignRequest]) error {
		report, err := schedulerSvc.GenerateWeek(ctx, job.Payload)
		if err != nil {
			return err
		}
		logr.Sugar().Infow("background roster run finished",
			"job_id", job.ID,
			"week_start", report.WeekStart,
			"assignments_created", report.AssignmentsCreated,
			"unfilled_slots", len(report.UnfilledSlots),
		)
		return nil
	}, jobs.QueueConfig{
		Workers: cfg.Scheduler.AsyncWorkers,
		Logger:  logr,
	})

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc, employeeSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	shiftTypeHandler := handler.NewShiftTypeHandler(shiftTypeSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	planningHandler := handler.NewPlanningHandler(planningSvc, schedulerSvc, exportSvc, runQueue)
	replacementHandler := handler.NewReplacementHandler(replacementSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
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
	r.GET("/ready", metricsHandler.Health)
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
		authed.POST("/auth/change-password", authHandler.ChangePassword)

		authed.GET("/employees", employeeHandler.List)
		authed.GET("/employees/:id", employeeHandler.Get)
		authed.POST("/employees", middleware.RequireRoles(models.RoleAdmin), employeeHandler.Create)
		authed.PUT("/employees/:id", middleware.RequireRoles(models.RoleAdmin), employeeHandler.Update)
		authed.DELETE("/employees/:id", middleware.RequireRoles(models.RoleAdmin), employeeHandler.Deactivate)

		authed.GET("/employees/:id/availabilities", middleware.RBAC(string(models.RoleAdmin), string(models.RoleSupervisor), "SELF"), availabilityHandler.ListByEmployee)
		authed.PUT("/employees/:id/availabilities", middleware.RBAC(string(models.RoleAdmin), "SELF"), availabilityHandler.Replace)

		authed.GET("/shift-types", shiftTypeHandler.List)
		authed.GET("/shift-types/:id", shiftTypeHandler.Get)
		authed.POST("/shift-types", middleware.RequireRoles(models.RoleAdmin), shiftTypeHandler.Create)
		authed.PUT("/shift-types/:id", middleware.RequireRoles(models.RoleAdmin), shiftTypeHandler.Update)
		authed.DELETE("/shift-types/:id", middleware.RequireRoles(models.RoleAdmin), shiftTypeHandler.Delete)

		authed.GET("/planning", planningHandler.GetWeek)
		authed.POST("/planning/assignments", middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor), planningHandler.AssignManually)
		authed.DELETE("/planning/assignments/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor), planningHandler.RemoveAssignment)
		authed.POST("/planning/auto-assign", middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor), planningHandler.AutoAssign)
		if cfg.Export.Enabled {
			authed.GET("/planning/export", planningHandler.Export)
		}

		authed.GET("/replacements", middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor), replacementHandler.List)
		authed.GET("/replacements/mine", replacementHandler.ListMine)
		authed.POST("/replacements", replacementHandler.Create)
		authed.POST("/replacements/:id/decision", middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor), replacementHandler.Decide)

		if cfg.Dashboard.Enabled {
			authed.GET("/dashboard/stats", dashboardHandler.Stats)
		}
	}

	runQueue.Start(ctx)
	defer runQueue.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushub/course-planner-api/api/swagger"
	"github.com/campushub/course-planner-api/internal/handler"
	"github.com/campushub/course-planner-api/internal/middleware"
	"github.com/campushub/course-planner-api/internal/models"
	"github.com/campushub/course-planner-api/internal/repository"
	"github.com/campushub/course-planner-api/internal/service"
	"github.com/campushub/course-planner-api/pkg/cache"
	"github.com/campushub/course-planner-api/pkg/config"
	"github.com/campushub/course-planner-api/pkg/database"
	"github.com/campushub/course-planner-api/pkg/logger"
	corsmiddleware "github.com/campushub/course-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/course-planner-api/pkg/middleware/requestid"
)

// @title Course Planner API
// @version 1.0.0
// @description Schedule validation and optimization for university course enrollment
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	var redisClient *redis.Client
	if cfg.Snapshot.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	validate := validator.New()

	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Snapshot.CacheTTL, logr, cfg.Snapshot.CacheEnabled && redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, logr, cfg.Snapshot.CacheTTL)
	plannerSvc := service.NewPlannerService(courseRepo, scheduleRepo, cacheSvc, metricsSvc, validate, logr, cfg.Planner, cfg.Snapshot.CacheTTL)
	exportSvc := service.NewExportService(plannerSvc, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

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
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	{
		authed.GET("/courses", courseHandler.List)
		authed.GET("/courses/subjects", courseHandler.Subjects)
		authed.GET("/courses/:id", courseHandler.Get)

		plans := authed.Group("/plans", middleware.RequireRoles(models.RoleStudent, models.RoleAdvisor))
		plans.POST("/validate", plannerHandler.Validate)
		plans.POST("/optimize", plannerHandler.Optimize)
		plans.POST("/save", plannerHandler.Save)

		authed.GET("/schedules", plannerHandler.ListSchedules)
		authed.GET("/schedules/:id", plannerHandler.GetSchedule)
		authed.POST("/schedules/:id/submit", plannerHandler.SubmitSchedule)
		authed.DELETE("/schedules/:id", plannerHandler.DeleteSchedule)
		authed.GET("/schedules/:id/export", plannerHandler.ExportSchedule)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

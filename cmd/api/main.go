package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studytrack/studytrack-api/api/swagger"
	"github.com/studytrack/studytrack-api/internal/handler"
	"github.com/studytrack/studytrack-api/internal/middleware"
	"github.com/studytrack/studytrack-api/internal/repository"
	"github.com/studytrack/studytrack-api/internal/service"
	"github.com/studytrack/studytrack-api/pkg/cache"
	"github.com/studytrack/studytrack-api/pkg/config"
	"github.com/studytrack/studytrack-api/pkg/database"
	"github.com/studytrack/studytrack-api/pkg/export"
	"github.com/studytrack/studytrack-api/pkg/logger"
	corsmiddleware "github.com/studytrack/studytrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studytrack/studytrack-api/pkg/middleware/requestid"
)

// @title StudyTrack API
// @version 1.0.0
// @description Academic performance and schedule tracking service
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && cacheRepo != nil)

	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	allocator := repository.NewSequenceAllocator(db)

	gradeSvc := service.NewGradeService(courseRepo, assignmentRepo, categoryRepo, cacheSvc, metricsSvc, logr)
	courseSvc := service.NewCourseService(courseRepo, allocator, cacheSvc, nil, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, courseRepo, categoryRepo, allocator, gradeSvc, cacheSvc, nil, logr)
	categorySvc := service.NewCategoryService(categoryRepo, courseRepo, allocator, gradeSvc, nil, logr)
	timetableSvc := service.NewTimetableService(courseRepo, cacheSvc, nil, logr, cfg.Planner.DefaultDuration, cfg.Planner.DefaultLocation)
	dashboardSvc := service.NewDashboardService(courseRepo, assignmentRepo, cacheSvc, logr, service.DashboardConfig{
		UpcomingWindow:  cfg.Dashboard.UpcomingWindow,
		UpcomingListMax: cfg.Dashboard.UpcomingListMax,
		CacheTTL:        cfg.Dashboard.CacheTTL,
	})
	reportSvc := service.NewReportService(courseRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr, service.ReportServiceConfig{
		Enabled:    cfg.Reports.Enabled,
		StorageDir: cfg.Reports.StorageDir,
	})

	courseHandler := handler.NewCourseHandler(courseSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
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

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/dashboard", dashboardHandler.Summary)
		api.GET("/gpa", gradeHandler.GPA)
		api.GET("/timetable", timetableHandler.Grid)
		api.GET("/metrics/summary", metricsHandler.Snapshot)
		api.GET("/reports/grades", reportHandler.GradeReport)

		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.GET("/courses/:id", courseHandler.Get)
		api.PUT("/courses/:id", courseHandler.Update)
		api.DELETE("/courses/:id", courseHandler.Delete)
		api.GET("/courses/:id/categories", categoryHandler.ListByCourse)
		api.GET("/courses/:id/grade", gradeHandler.CourseGrade)
		api.POST("/courses/:id/grade/recalculate", gradeHandler.Recalculate)
		api.PUT("/courses/:id/slots", timetableHandler.PlaceSlot)
		api.DELETE("/courses/:id/slots", timetableHandler.RemoveSlot)

		api.GET("/assignments", assignmentHandler.List)
		api.POST("/assignments", assignmentHandler.Create)
		api.GET("/assignments/:id", assignmentHandler.Get)
		api.PUT("/assignments/:id", assignmentHandler.Update)
		api.PATCH("/assignments/:id/toggle", assignmentHandler.ToggleComplete)
		api.DELETE("/assignments/:id", assignmentHandler.Delete)

		api.POST("/categories", categoryHandler.Create)
		api.GET("/categories/:id", categoryHandler.Get)
		api.PUT("/categories/:id", categoryHandler.Update)
		api.DELETE("/categories/:id", categoryHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

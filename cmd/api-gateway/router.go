package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/handler"
	"github.com/noah-isme/teacher-evaluation-api/internal/middleware"
	"github.com/noah-isme/teacher-evaluation-api/internal/service"
	"github.com/noah-isme/teacher-evaluation-api/pkg/config"
	"github.com/noah-isme/teacher-evaluation-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/teacher-evaluation-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/teacher-evaluation-api/pkg/middleware/requestid"
)

type routeHandlers struct {
	teachers    *handler.TeacherHandler
	evaluations *handler.EvaluationHandler
	documents   *handler.DocumentHandler
	exports     *handler.ExportHandler
	rubric      *handler.RubricHandler
	metrics     *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics"))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/rubric", h.rubric.Get)

	teachers := api.Group("/teachers")
	teachers.GET("", h.teachers.List)
	teachers.POST("", h.teachers.Create)
	teachers.POST("/import", h.teachers.Import)
	teachers.GET("/:id", h.teachers.Get)
	teachers.PUT("/:id", h.teachers.Update)
	teachers.DELETE("/:id", h.teachers.Delete)
	teachers.GET("/:id/evaluations", h.teachers.Evaluations)

	evaluations := api.Group("/evaluations")
	evaluations.GET("", h.evaluations.List)
	evaluations.POST("", h.evaluations.Create)
	evaluations.GET("/:id", h.evaluations.Get)
	evaluations.PUT("/:id", h.evaluations.Update)
	evaluations.DELETE("/:id", h.evaluations.Delete)
	evaluations.GET("/:id/document", h.documents.Evaluation)

	exports := api.Group("/exports")
	exports.POST("/evaluations", h.documents.Batch)
	if h.exports != nil {
		exports.POST("/jobs", h.exports.CreateJob)
		exports.GET("/jobs/:id", h.exports.Status)
		exports.GET("/download/:token", h.exports.Download)
	}

	return r
}

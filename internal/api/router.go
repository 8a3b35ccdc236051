package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/d60-Lab/postwatch/config"
	_ "github.com/d60-Lab/postwatch/docs"
	"github.com/d60-Lab/postwatch/internal/api/handler"
	"github.com/d60-Lab/postwatch/internal/api/middleware"
)

// NewRouter 组装中间件与路由；limiter 为 nil 时不限流
func NewRouter(cfg *config.Config, h *handler.Handler, db *gorm.DB, limiter *middleware.RateLimiter) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
	)
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	r.GET("/healthz", handler.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(gzip.Gzip(gzip.DefaultCompression))
	if limiter != nil {
		v1.Use(limiter.Middleware())
	}
	auth := middleware.JWTAuth(cfg.Auth.JWTSecret)
	{
		posts := v1.Group("/posts")
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
	}
	{
		profiles := v1.Group("/profiles")
		profiles.GET("", h.ListProfiles)
		profiles.GET("/:id", h.GetProfile)
		profiles.PUT("/:id", auth, h.UpdateProfile)
	}
	{
		categories := v1.Group("/categories")
		categories.GET("", h.ListCategories)
		categories.POST("", auth, h.CreateCategory)
	}
	return r
}

// Package router 提供 HTTP 路由配置
package router

import (
	"ad-workflow-api/internal/config"
	"ad-workflow-api/internal/interfaces/http/handler"
	"ad-workflow-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Health      *handler.HealthHandler
	Project     *handler.ProjectHandler
	Video       *handler.VideoHandler
	Deliverable *handler.DeliverableHandler
}

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine: engine,
		cfg:    cfg,
	}

	r.setupMiddleware()
	r.setupRoutes(handlers)

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.Auth(middleware.AuthConfig{
		Secret:    r.cfg.Security.JWT.Secret,
		Issuer:    r.cfg.Security.JWT.Issuer,
		Enabled:   r.cfg.Security.JWT.Enabled,
		SkipPaths: []string{"/health", "/ready", "/live", r.cfg.Observability.Metrics.Path},
	}))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes(handlers Handlers) {
	r.engine.GET("/health", handlers.Health.Health)
	r.engine.GET("/ready", handlers.Health.Ready)
	r.engine.GET("/live", handlers.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.engine.Group("/v1")
	RegisterV1Routes(v1, handlers.Project, handlers.Video, handlers.Deliverable)
}

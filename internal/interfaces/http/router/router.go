// Package router 提供 HTTP 路由配置
package router

import (
	"essay-ai-api/internal/config"
	"essay-ai-api/internal/interfaces/http/handler"
	"essay-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
}

// Dependencies 路由依赖的处理器与中间件
type Dependencies struct {
	EssayHandler  *handler.EssayHandler
	HealthHandler *handler.HealthHandler
	RateLimiter   middleware.RateLimiter
}

// New 创建新的路由器
func New(cfg *config.Config, deps Dependencies) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine: engine,
		cfg:    cfg,
	}

	r.setupMiddleware(deps)
	r.setupRoutes(deps)

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware(deps Dependencies) {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	// 认证中间件
	r.engine.Use(middleware.Auth(middleware.AuthConfig{
		Enabled:   r.cfg.Security.JWT.Enabled,
		Secret:    r.cfg.Security.JWT.Secret,
		Issuer:    r.cfg.Security.JWT.Issuer,
		SkipPaths: middleware.DefaultSkipPaths,
	}))

	// 限流中间件
	r.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             r.cfg.Security.RateLimit.Burst,
	}, deps.RateLimiter))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes(deps Dependencies) {
	// 系统端点
	r.engine.GET("/health", deps.HealthHandler.Health)
	r.engine.GET("/ready", deps.HealthHandler.Ready)
	r.engine.GET("/live", deps.HealthHandler.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// API v1 路由组
	v1 := r.engine.Group("/v1")
	RegisterV1Routes(v1, deps.EssayHandler)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/config"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/metrics"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/middlewares"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/services"
)

// Handler 聚合所有依赖（配置、服务、缓存句柄）并注册所有 HTTP 路由。
type Handler struct {
	cfg      config.Config
	auditSvc *services.AuditService
	rdb      *redis.Client
}

// New 构造 Handler，将各领域服务注入，用于后续路由注册与处理。
// rdb 与 auditSvc 均可为 nil（对应功能关闭）。
func New(cfg config.Config, auditSvc *services.AuditService, rdb *redis.Client) *Handler {
	return &Handler{cfg: cfg, auditSvc: auditSvc, rdb: rdb}
}

// RegisterRoutes 在 Gin 路由上挂载全部端点（根信息、计算、健康检查、指标、审计流水）。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/healthz", h.healthz)
	r.GET("/metrics", metrics.Exposer())

	add := r.Group("/")
	if h.rdb != nil && h.cfg.Limits.AddPerMinute > 0 {
		add.Use(middlewares.RateLimit(h.rdb, "add", h.cfg.Limits.AddPerMinute, h.cfg.Limits.Window, func(c *gin.Context) string {
			return c.ClientIP()
		}))
	}
	add.POST("/add", h.addNumbers)

	if h.auditSvc.Enabled() {
		r.GET("/api/history", h.apiHistory)
	}
}

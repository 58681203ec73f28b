package main

// @title           SecureCalc API
// @version         0.1.0
// @description     基于 Go(Gin) 的演示服务：根信息与求和端点、固定安全响应头、结构化校验错误；配套 CI 流水线编排外部格式化/静态/依赖/动态扫描工具。
// @schemes         http https
// @BasePath        /

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/config"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/handlers"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/metrics"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/middlewares"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/services"
	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/storage"
)

// main 为服务入口：加载配置、初始化日志/可选存储、注册路由并启动 HTTP 服务。
func main() {
	// 配置结构化日志格式
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// 加载配置（以配置文件为主，配合内置默认值）
	cfg := config.Load()
	// 生产环境基线检查：禁止默认数据库密码进入生产。
	if cfg.Env == "prod" && cfg.Audit.Enable {
		if cfg.MySQL.Password == "123456" || cfg.MySQL.Password == "password" || cfg.MySQL.Password == "" {
			log.Fatal("insecure mysql password in prod; configure mysql.password in config.yaml")
		}
	}
	log.WithFields(log.Fields{
		"env":       cfg.Env,
		"http_addr": cfg.HTTPAddr,
		"audit":     cfg.Audit.Enable,
		"redis":     cfg.Redis.Enable,
	}).Info("configuration loaded")

	// 初始化可选存储：审计需要 MySQL，限流需要 Redis；均默认关闭。
	auditSvc := services.NewAuditService(nil)
	if cfg.Audit.Enable {
		db, err := storage.InitMySQL(cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to connect mysql")
		}
		defer storage.CloseMySQL(db)
		log.WithField("mysql_dsn", cfg.MySQL.DSNMasked()).Info("audit trail enabled")
		auditSvc = services.NewAuditService(storage.NewCalcStore(db))
	}

	var rdb *redis.Client
	if cfg.Redis.Enable {
		var err error
		rdb, err = storage.InitRedis(cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to connect redis")
		}
		defer func() { _ = rdb.Close() }()
	}

	// HTTP 路由与中间件
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders())
	router.Use(metrics.Handler())

	// 装载 HTTP 处理器
	h := handlers.New(cfg, auditSvc, rdb)
	h.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	// 优雅退出
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	} else {
		log.Info("server stopped")
	}
}

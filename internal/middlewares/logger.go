package middlewares

// 本中间件负责输出结构化访问日志：方法、路径、状态码、耗时、响应字节数、
// 客户端 IP，以及 RequestID 中间件写入 Context 的 request_id（便于按请求串联日志）。

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger 输出结构化的访问日志。须挂载在 RequestID 之后，否则 request_id 为空。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		dur := time.Since(start)
		fields := log.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": dur.Milliseconds(),
			"bytes":      c.Writer.Size(),
			"ip":         c.ClientIP(),
		}
		if rid := c.GetString(ContextKeyRequestID); rid != "" {
			fields["request_id"] = rid
		}
		entry := log.WithFields(fields)
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Warn("request completed with errors")
		} else {
			entry.Info("request completed")
		}
	}
}

package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderXRequestID 是请求标识的传输头，客户端提供则透传，否则由服务生成。
	HeaderXRequestID = "X-Request-Id"
	// ContextKeyRequestID 是请求标识在 Gin Context 中的键，供访问日志等下游读取。
	ContextKeyRequestID = "request_id"
)

// RequestID 中间件：生成或透传 X-Request-Id，保存到 Gin Context，并回写响应头。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, rid)
		c.Writer.Header().Set(HeaderXRequestID, rid)
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

// RequestID 为每个请求分配 ID，并写入日志上下文
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx := log.WithRequestID(c.Request.Context(), id)
		ctx = log.WithClient(ctx, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

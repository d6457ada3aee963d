package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/infrastructure/ratelimit"
	"github.com/summarydesk/backend/internal/interfaces/http/response"
)

// HeaderAPIKey 写入接口的认证头
const HeaderAPIKey = "X-API-Key"

// RequireAPIKey 校验 X-API-Key；未配置 API Key 时拒绝所有请求
func RequireAPIKey(apiKey string) gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "apikey")
	expected := []byte(apiKey)
	if apiKey == "" {
		logger.Warn("API key not configured, ingestion endpoints will reject every request")
	}
	return func(c *gin.Context) {
		given := c.GetHeader(HeaderAPIKey)
		if apiKey == "" || given == "" || subtle.ConstantTimeCompare([]byte(given), expected) != 1 {
			log.FromContext(c.Request.Context(), logger).Warn("Rejected request with invalid API key",
				"path", c.Request.URL.Path,
			)
			response.Ingest(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := log.WithClient(c.Request.Context(), "key:"+fingerprint(given))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// IngestRateLimit 按 API Key 限流
func IngestRateLimit(limiter *ratelimit.Keyed) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(fingerprint(c.GetHeader(HeaderAPIKey))) {
			c.Header("Retry-After", "1")
			response.Ingest(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

// fingerprint API Key 的短指纹，日志中不记录原文
func fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}

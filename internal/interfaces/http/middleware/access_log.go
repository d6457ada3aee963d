package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/infrastructure/metrics"
)

// AccessLog 访问日志与 HTTP 指标
func AccessLog(m *metrics.Metrics) gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if m != nil {
			m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), elapsed)
		}

		level := slog.LevelDebug
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		log.FromContext(c.Request.Context(), logger).Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summarydesk/backend/internal/infrastructure/storage"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db *storage.DB
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *storage.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health 存活与数据库连通性
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": string(h.db.Dialect)})
}

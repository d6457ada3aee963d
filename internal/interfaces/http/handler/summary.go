package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appSummary "github.com/summarydesk/backend/internal/application/summary"
	domainSummary "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/interfaces/http/response"
)

// SummaryHandler 摘要处理器
type SummaryHandler struct {
	ingest   *appSummary.IngestService
	query    *appSummary.QueryService
	deletion *appSummary.DeletionService
}

// NewSummaryHandler 创建摘要处理器
func NewSummaryHandler(
	ingest *appSummary.IngestService,
	query *appSummary.QueryService,
	deletion *appSummary.DeletionService,
) *SummaryHandler {
	return &SummaryHandler{
		ingest:   ingest,
		query:    query,
		deletion: deletion,
	}
}

// DeleteBatchRequest 批量删除请求
type DeleteBatchRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}

// Ingest 批量写入摘要
// @Summary 批量写入会话摘要
// @Description 整批校验，任一实体不合法则整批拒绝
// @Tags 摘要
// @Accept json
// @Produce json
// @Param X-API-Key header string true "API Key"
// @Param body body appSummary.IngestRequest true "摘要批次"
// @Success 200 {object} appSummary.IngestResult
// @Failure 400 {object} response.IngestError
// @Failure 401 {object} response.IngestError
// @Failure 500 {object} response.IngestError
// @Router /conversations [post]
func (h *SummaryHandler) Ingest(c *gin.Context) {
	var req appSummary.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.IngestWithDetails(c, http.StatusBadRequest, appSummary.ErrInvalidRequest.Error(), err.Error())
		return
	}

	result, err := h.ingest.Ingest(c.Request.Context(), &req)
	if err != nil {
		var batchErr *appSummary.BatchValidationError
		switch {
		case errors.Is(err, appSummary.ErrInvalidRequest):
			response.Ingest(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &batchErr):
			response.IngestWithDetails(c, http.StatusBadRequest, batchErr.Error(), batchErr.Details())
		default:
			response.IngestWithDetails(c, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Dashboard 仪表盘分组数据
// @Summary 仪表盘
// @Description 按分组键重新计算父子/共享/独立分组
// @Tags 摘要
// @Produce json
// @Success 200 {object} response.Response{data=appSummary.DashboardDTO}
// @Failure 401 {object} response.ErrorResponse
// @Router /dashboard [get]
func (h *SummaryHandler) Dashboard(c *gin.Context) {
	out, err := h.query.Dashboard(c.Request.Context())
	if err != nil {
		response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load dashboard", err.Error())
		return
	}
	response.Success(c, out)
}

// List 平铺列表
// @Summary 摘要列表
// @Tags 摘要
// @Produce json
// @Param summaryType query string false "Agent|VirtualAgent|Conversation"
// @Param mediaType query string false "渠道"
// @Param language query string false "语言"
// @Param order query string false "asc|desc"
// @Success 200 {object} response.Response{data=[]appSummary.SummaryDTO}
// @Failure 400 {object} response.ErrorResponse
// @Router /summaries [get]
func (h *SummaryHandler) List(c *gin.Context) {
	var q appSummary.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParam, "Invalid query")
		return
	}

	out, err := h.query.List(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, appSummary.ErrInvalidQuery) {
			response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "Invalid query", err.Error())
			return
		}
		response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list summaries", err.Error())
		return
	}
	response.Success(c, out)
}

// Detail 摘要详情
// @Summary 摘要详情
// @Tags 摘要
// @Produce json
// @Param id path int true "摘要 ID"
// @Success 200 {object} response.Response{data=appSummary.SummaryDetailDTO}
// @Failure 404 {object} response.ErrorResponse
// @Router /summaries/{id} [get]
func (h *SummaryHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParam, "Invalid id")
		return
	}

	out, err := h.query.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainSummary.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
			return
		}
		response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load summary", err.Error())
		return
	}
	response.Success(c, out)
}

// Delete 删除摘要（会话类型级联删除子记录）
// @Summary 删除摘要
// @Tags 摘要
// @Produce json
// @Param id path int true "摘要 ID"
// @Success 200 {object} response.DeleteResult
// @Failure 404 {object} response.DeleteResult
// @Failure 500 {object} response.DeleteResult
// @Router /summaries/{id} [delete]
func (h *SummaryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, response.DeleteResult{Error: "Invalid id"})
		return
	}

	n, err := h.deletion.DeleteOne(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domainSummary.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, response.DeleteResult{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.DeleteResult{Success: true, Deleted: n})
}

// DeleteBatch 批量删除
// @Summary 批量删除摘要
// @Description 逐条删除，单条失败不影响其余条目
// @Tags 摘要
// @Accept json
// @Produce json
// @Param body body DeleteBatchRequest true "ID 列表"
// @Success 200 {object} appSummary.BatchDeleteResult
// @Failure 400 {object} response.DeleteResult
// @Router /summaries/delete [post]
func (h *SummaryHandler) DeleteBatch(c *gin.Context) {
	var req DeleteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.DeleteResult{Error: "Invalid request format. Expected { ids: [...] }"})
		return
	}

	result := h.deletion.DeleteMany(c.Request.Context(), req.IDs)
	log.FromContext(c.Request.Context(), log.GetLogger()).Info("Batch delete finished",
		"requested", len(req.IDs),
		"deleted", result.Deleted,
		"failed", len(result.Failed),
	)
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

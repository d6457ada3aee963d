package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/summarydesk/backend/internal/infrastructure/i18n"
	"github.com/summarydesk/backend/internal/interfaces/http/response"
)

// LocaleCookieName 语言 cookie 名
const LocaleCookieName = "locale"

// localeCookieMaxAge 一年
const localeCookieMaxAge = 60 * 60 * 24 * 365

// UIHandler 仪表盘展示相关处理器
type UIHandler struct {
	catalog  *i18n.Catalog
	branding *i18n.BrandingProvider
}

// NewUIHandler 创建 UI 处理器
func NewUIHandler(catalog *i18n.Catalog, branding *i18n.BrandingProvider) *UIHandler {
	return &UIHandler{catalog: catalog, branding: branding}
}

// LabelsResponse 标签目录
type LabelsResponse struct {
	Locale  string            `json:"locale"`
	Locales []string          `json:"locales"`
	Labels  map[string]string `json:"labels"`
}

// SetLocaleRequest 切换语言请求
type SetLocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

// Labels 当前语言的标签
// @Summary 本地化标签
// @Tags 界面
// @Produce json
// @Param locale query string false "语言"
// @Success 200 {object} response.Response{data=LabelsResponse}
// @Router /ui/labels [get]
func (h *UIHandler) Labels(c *gin.Context) {
	cookie, _ := c.Cookie(LocaleCookieName)
	locale := h.catalog.Resolve([]string{c.Query("locale"), cookie}, c.GetHeader("Accept-Language"))
	response.Success(c, LabelsResponse{
		Locale:  locale,
		Locales: h.catalog.Locales(),
		Labels:  h.catalog.Labels(locale),
	})
}

// SetLocale 切换语言
// @Summary 切换语言
// @Tags 界面
// @Accept json
// @Produce json
// @Param body body SetLocaleRequest true "语言"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /ui/locale [put]
func (h *UIHandler) SetLocale(c *gin.Context) {
	var req SetLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !h.catalog.IsSupported(req.Locale) {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "Unsupported locale", req.Locale)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(LocaleCookieName, req.Locale, localeCookieMaxAge, "/", "", false, false)
	response.Success(c, gin.H{"locale": req.Locale})
}

// Branding 品牌配置
// @Summary 品牌配置
// @Tags 界面
// @Produce json
// @Success 200 {object} response.Response{data=i18n.Branding}
// @Router /ui/branding [get]
func (h *UIHandler) Branding(c *gin.Context) {
	response.Success(c, h.branding.Current())
}

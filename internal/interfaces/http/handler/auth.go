package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/summarydesk/backend/internal/application/auth"
	"github.com/summarydesk/backend/internal/interfaces/http/middleware"
	"github.com/summarydesk/backend/internal/interfaces/http/response"
)

// AuthHandler 登录处理器
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler 创建登录处理器
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionInfo 当前会话
type SessionInfo struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login 登录
// @Summary 仪表盘登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body LoginRequest true "凭证"
// @Success 200 {object} response.Response{data=auth.Session}
// @Failure 401 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParam, "Username and password are required")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, err.Error())
		case errors.Is(err, auth.ErrLoginDisabled):
			response.Error(c, http.StatusServiceUnavailable, response.CodeLoginDisabled, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
		default:
			response.ErrorWithDetail(c, http.StatusInternalServerError, response.CodeInternal, "Login failed", err.Error())
		}
		return
	}

	setSessionCookie(c, session.Token, int(h.service.TTL().Seconds()))
	response.Success(c, session)
}

// Logout 注销
// @Summary 注销
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(middleware.SessionToken(c))
	setSessionCookie(c, "", -1)
	response.Success(c, nil)
}

// Session 当前会话信息
// @Summary 当前会话
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=SessionInfo}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized")
		return
	}
	info := SessionInfo{Username: claims.Username}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	response.Success(c, info)
}

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", c.Request.TLS != nil, true)
}

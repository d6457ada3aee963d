package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summarydesk/backend/internal/application/auth"
	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/interfaces/http/middleware"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc, err := auth.NewService(&config.AuthConfig{
		Username:           "admin",
		Password:           "pw",
		SessionSecret:      "handler-secret",
		SessionTTL:         time.Hour,
		LoginRatePerMinute: 50,
	}, nil)
	require.NoError(t, err)

	h := NewAuthHandler(svc)
	router := gin.New()
	api := router.Group("/api/v1/auth")
	{
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/session", middleware.RequireSession(svc), h.Session)
	}
	return router
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

// TestAuthHandler_LoginSessionLogout 登录、查看会话、注销
func TestAuthHandler_LoginSessionLogout(t *testing.T) {
	router := setupAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[envelope[SessionInfo]](t, w)
	assert.Equal(t, "admin", info.Data.Username)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// 注销后原令牌失效
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthHandler_LoginFailures 登录失败场景
func TestAuthHandler_LoginFailures(t *testing.T) {
	router := setupAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", strings.Repeat("x", 3))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

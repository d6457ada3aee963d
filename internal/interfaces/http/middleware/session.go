package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/summarydesk/backend/internal/application/auth"
	"github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/interfaces/http/response"
)

// SessionCookieName 会话 cookie 名
const SessionCookieName = "summarydesk_session"

// 上下文键
const (
	ContextClaims = "auth.claims"
	ContextToken  = "auth.token"
)

// RequireSession 校验会话（cookie 或 Bearer 令牌）
func RequireSession(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		claims, err := svc.Verify(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized")
			return
		}
		c.Set(ContextClaims, claims)
		c.Set(ContextToken, token)
		c.Request = c.Request.WithContext(log.WithUser(c.Request.Context(), claims.Username))
		c.Next()
	}
}

// SessionToken 从 Authorization 头或 cookie 中读取会话令牌
func SessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// ClaimsFrom 读取 RequireSession 写入的会话声明
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

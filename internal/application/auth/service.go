package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/infrastructure/ratelimit"
)

const issuer = "summarydesk"

// 登录结果（指标标签）
const (
	ResultSuccess     = "success"
	ResultFailure     = "failure"
	ResultRateLimited = "rate_limited"
	ResultDisabled    = "disabled"
)

var (
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRateLimited 登录尝试过于频繁
	ErrRateLimited = errors.New("too many login attempts, try again later")
	// ErrLoginDisabled 未配置仪表盘账号
	ErrLoginDisabled = errors.New("dashboard login is not configured")
	// ErrInvalidSession 会话无效或已过期
	ErrInvalidSession = errors.New("invalid or expired session")
)

// LoginRecorder 登录指标
type LoginRecorder interface {
	LoginAttempt(result string)
}

// Claims 会话令牌声明
type Claims struct {
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

// Session 登录成功后签发的会话
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service 仪表盘登录与会话校验
type Service struct {
	username     string
	password     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration

	revoked  *cache.Cache // jti -> struct{}
	limiter  *ratelimit.Keyed
	recorder LoginRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService 创建认证服务
// 未配置 session secret 时生成随机密钥，重启后所有会话失效
func NewService(cfg *config.AuthConfig, recorder LoginRecorder) (*Service, error) {
	logger := log.NewModuleLogger("auth", "service")

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Warn("No session secret configured, sessions will not survive a restart",
			"env", config.EnvSessionSecret,
		)
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	s := &Service{
		username: strings.TrimSpace(cfg.Username),
		password: cfg.Password,
		secret:   secret,
		ttl:      ttl,
		revoked:  cache.New(ttl, time.Hour),
		limiter:  ratelimit.PerMinute(cfg.LoginRatePerMinute),
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
	if cfg.PasswordHash != "" {
		s.passwordHash = []byte(cfg.PasswordHash)
		if _, err := bcrypt.Cost(s.passwordHash); err != nil {
			return nil, fmt.Errorf("invalid password hash: %w", err)
		}
	}

	if !s.Enabled() {
		logger.Warn("Dashboard credentials not configured, login is disabled",
			"env_username", config.EnvUsername,
		)
	}
	return s, nil
}

// Enabled 是否配置了仪表盘账号
func (s *Service) Enabled() bool {
	return s.username != "" && (s.password != "" || len(s.passwordHash) > 0)
}

// TTL 会话有效期
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login 校验凭证并签发会话
func (s *Service) Login(ctx context.Context, username, password, clientIP string) (*Session, error) {
	logger := log.FromContext(ctx, s.logger)

	if !s.Enabled() {
		s.record(ResultDisabled)
		return nil, ErrLoginDisabled
	}
	if !s.limiter.Allow(clientIP) {
		s.record(ResultRateLimited)
		logger.Warn("Login rate limited", "client_ip", clientIP)
		return nil, ErrRateLimited
	}
	if !s.checkCredentials(username, password) {
		s.record(ResultFailure)
		logger.Info("Login failed", "client_ip", clientIP, "username", username)
		return nil, ErrInvalidCredentials
	}

	session, err := s.issue(s.username)
	if err != nil {
		return nil, err
	}
	s.record(ResultSuccess)
	logger.Info("Login succeeded", "client_ip", clientIP, "username", s.username)
	return session, nil
}

// Verify 校验会话令牌
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	if _, revoked := s.revoked.Get(claims.ID); revoked {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Logout 吊销会话令牌；无效令牌直接忽略
func (s *Service) Logout(tokenString string) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return
	}
	s.revoked.Set(claims.ID, struct{}{}, remaining)
}

func (s *Service) issue(username string) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &Session{Token: signed, Username: username, ExpiresAt: expiresAt}, nil
}

func (s *Service) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1
	var passOK bool
	if len(s.passwordHash) > 0 {
		passOK = bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}
	return userOK && passOK
}

func (s *Service) record(result string) {
	if s.recorder != nil {
		s.recorder.LoginAttempt(result)
	}
}

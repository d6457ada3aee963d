package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/summarydesk/backend/internal/application/auth"
	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/infrastructure/metrics"
	"github.com/summarydesk/backend/internal/infrastructure/ratelimit"
	"github.com/summarydesk/backend/internal/interfaces/http/handler"
	"github.com/summarydesk/backend/internal/interfaces/http/middleware"
	"github.com/summarydesk/backend/internal/interfaces/mcp"

	_ "github.com/summarydesk/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router *gin.Engine
	cfg    *config.ServerConfig
	server *http.Server
	logger *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	authCfg *config.AuthConfig,
	summaryHandler *handler.SummaryHandler,
	authHandler *handler.AuthHandler,
	uiHandler *handler.UIHandler,
	healthHandler *handler.HealthHandler,
	authService *auth.Service,
	appMetrics *metrics.Metrics,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(appMetrics),
	)

	logger := log.NewModuleLogger("http", "server")

	requireSession := middleware.RequireSession(authService)
	requireAPIKey := middleware.RequireAPIKey(authCfg.APIKey)

	// 注册路由
	api := router.Group("/api/v1")
	{
		// 外部系统写入
		api.POST("/conversations",
			requireAPIKey,
			middleware.IngestRateLimit(ratelimit.PerSecond(cfg.IngestRatePerSecond)),
			middleware.EnsureUTF8Body(),
			summaryHandler.Ingest,
		)

		// 仪表盘（需要登录）
		dashboard := api.Group("", requireSession)
		{
			dashboard.GET("/dashboard", summaryHandler.Dashboard)
			dashboard.GET("/summaries", summaryHandler.List)
			dashboard.GET("/summaries/:id", summaryHandler.Detail)
			dashboard.DELETE("/summaries/:id", summaryHandler.Delete)
			dashboard.POST("/summaries/delete", summaryHandler.DeleteBatch)
		}

		// 认证
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/session", requireSession, authHandler.Session)
		}

		// 界面配置
		ui := api.Group("/ui")
		{
			ui.GET("/labels", uiHandler.Labels)
			ui.PUT("/locale", uiHandler.SetLocale)
			ui.GET("/branding", uiHandler.Branding)
		}
	}

	// 健康检查
	router.GET("/health", healthHandler.Health)

	// Prometheus 指标
	if appMetrics != nil {
		router.GET("/metrics", gin.WrapH(appMetrics.Handler()))
	}

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点
	if mcpServer != nil {
		router.Any("/mcp/sse", requireAPIKey, gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Router 返回路由（测试使用）
func (s *HTTPServer) Router() *gin.Engine {
	return s.router
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.HTTPPort,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("HTTP server starting",
		"port", s.cfg.HTTPPort,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

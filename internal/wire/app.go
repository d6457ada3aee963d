package wire

import (
	"log/slog"

	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/i18n"
	applog "github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	MCPServer  *interfaces.MCPServer

	cfg      *config.Config
	branding *i18n.BrandingProvider
	logger   *slog.Logger

	// 配置文件监听（未使用配置文件时为 nil）
	configWatcher *config.Watcher
	errCh         chan error
}

// NewApp 创建应用实例
func NewApp(
	cfg *config.Config,
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	branding *i18n.BrandingProvider,
) *App {
	return &App{
		HTTPServer: httpServer,
		MCPServer:  mcpServer,
		cfg:        cfg,
		branding:   branding,
		logger:     applog.NewModuleLogger("app", "main"),
		errCh:      make(chan error, 1),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting summarydesk backend")

	// 配置文件变化时热更新品牌配置
	if path := a.cfg.Path(); path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			a.logger.Error("Failed to watch config file, branding hot reload disabled",
				"path", path,
				"error", err,
			)
		} else {
			w.OnChange(func(c *config.Config) {
				a.branding.Update(c.UI)
				a.logger.Info("Branding reloaded from config file", "path", path)
			})
			w.Start()
			a.configWatcher = w
		}
	}

	// 启动 HTTP 服务器（goroutine）
	// MCP 服务器通过 /mcp/sse 挂载在 HTTP 服务器上，不需要单独启动
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("HTTP server failed",
				"error", err,
			)
			a.errCh <- err
		}
	}()

	a.logger.Info("summarydesk backend started")
	return nil
}

// Errors HTTP 服务器异常退出时收到错误
func (a *App) Errors() <-chan error {
	return a.errCh
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping summarydesk backend")

	if a.configWatcher != nil {
		if err := a.configWatcher.Stop(); err != nil {
			a.logger.Error("Failed to stop config watcher",
				"error", err,
			)
		}
	}

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	a.logger.Info("summarydesk backend stopped")
	return nil
}

// @title summarydesk API
// @version 1.0
// @description 会话摘要写入与仪表盘 API 服务
// @host localhost:19960
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/summarydesk/backend/internal/infrastructure/config"
	applog "github.com/summarydesk/backend/internal/infrastructure/log"
	"github.com/summarydesk/backend/internal/infrastructure/singleton"
	"github.com/summarydesk/backend/internal/wire"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config.yaml (defaults to the data directory)")
	port := pflag.StringP("port", "p", "", "HTTP listen address, e.g. :19960 (overrides config)")
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pflag.Parse()

	// .env 不存在时忽略
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	// 初始化日志系统
	applog.Init(applog.NewConfigFromEnv())
	logger := applog.GetLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.HTTPPort = *port
	}

	// 端口检查：已有实例运行时直接退出
	if err := singleton.NewGuard("/health").Check(cfg.Server.HTTPPort); err != nil {
		if errors.Is(err, singleton.ErrAlreadyRunning) {
			logger.Info("Another instance is already running, exiting", "port", cfg.Server.HTTPPort)
			os.Exit(0)
		}
		logger.Error("Port check failed", "port", cfg.Server.HTTPPort, "error", err)
		os.Exit(1)
	}

	// Wire 自动生成的初始化函数
	app, cleanup, err := wire.InitializeAll(cfg)
	if err != nil {
		logger.Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}
	defer cleanup()

	if err := app.Start(); err != nil {
		logger.Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	select {
	case <-sigChan:
	case <-app.Errors():
		exitCode = 1
	}

	logger.Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		logger.Error("Error during application shutdown",
			"error", err,
		)
	}
	logger.Info("Application stopped")

	if exitCode != 0 {
		cleanup()
		os.Exit(exitCode)
	}
}

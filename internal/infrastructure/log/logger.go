package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/summarydesk/backend/internal/infrastructure/log/handler"
)

// 全局 logger 实例
var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	debugMode     bool
	outputFile    *os.File
)

// Init 初始化日志系统
func Init(cfg *Config) {
	if cfg == nil {
		cfg = NewConfigFromEnv()
	}

	out, err := openOutput(cfg.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log output %q unavailable, falling back to stdout: %v\n", cfg.Output, err)
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var logHandler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		logHandler = handler.NewJSONHandler(out, opts)
	} else {
		logHandler = handler.NewConsoleHandler(out, opts)
	}

	service := cfg.Service
	if service == "" {
		service = "summarydesk-backend"
	}
	logger := slog.New(logHandler.WithAttrs([]slog.Attr{
		slog.String("service", service),
	}))

	mu.Lock()
	defaultLogger = logger
	debugMode = strings.EqualFold(cfg.Level, "debug")
	mu.Unlock()

	slog.SetDefault(logger)
}

// openOutput 解析输出目标
func openOutput(output string) (io.Writer, error) {
	switch {
	case output == "" || output == "stdout":
		return os.Stdout, nil
	case output == "stderr":
		return os.Stderr, nil
	case strings.HasPrefix(output, "file:"):
		path := strings.TrimPrefix(output, "file:")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		if outputFile != nil {
			outputFile.Close()
		}
		outputFile = f
		mu.Unlock()
		return f, nil
	default:
		return nil, fmt.Errorf("unknown log output")
	}
}

// GetLogger 获取默认 logger
func GetLogger() *slog.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	if logger == nil {
		Init(nil)
		mu.RLock()
		logger = defaultLogger
		mu.RUnlock()
	}
	return logger
}

// NewModuleLogger 为特定模块创建 logger
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// IsDebugMode 检查是否为调试模式
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugMode
}

// parseLevel 解析日志级别
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

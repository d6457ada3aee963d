package log

import (
	"os"
	"strconv"
	"strings"
)

// Config 日志配置
type Config struct {
	// Level 日志级别：debug, info, warn, error
	Level string `json:"level" env:"LOG_LEVEL"`

	// Format 日志格式：console, json
	Format string `json:"format" env:"LOG_FORMAT"`

	// Output 输出目标：stdout, stderr, file:/path/to/log
	Output string `json:"output" env:"LOG_OUTPUT"`

	// AddSource 是否添加源文件信息
	AddSource bool `json:"add_source" env:"LOG_ADD_SOURCE"`

	// Service 服务标识，写入每条日志
	Service string `json:"service" env:"LOG_SERVICE"`
}

// NewConfigFromEnv 从环境变量创建配置
func NewConfigFromEnv() *Config {
	cfg := &Config{
		Level:     getEnvWithDefault("LOG_LEVEL", "info"),
		Format:    getEnvWithDefault("LOG_FORMAT", "console"),
		Output:    getEnvWithDefault("LOG_OUTPUT", "stdout"),
		AddSource: getEnvBool("LOG_ADD_SOURCE", false),
		Service:   getEnvWithDefault("LOG_SERVICE", "summarydesk-backend"),
	}

	// 开发环境强制 debug + console
	if isDevelopment() {
		cfg.Level = "debug"
		cfg.Format = "console"
		cfg.AddSource = true
	}

	return cfg
}

func isDevelopment() bool {
	return strings.EqualFold(getEnvWithDefault("ENV", "production"), "development")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

package log

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo}, // 默认值
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("默认配置", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("ENV", "")

		cfg := NewConfigFromEnv()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, "summarydesk-backend", cfg.Service)
	})

	t.Run("自定义配置", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENV", "")

		cfg := NewConfigFromEnv()
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("开发环境覆盖", func(t *testing.T) {
		t.Setenv("ENV", "development")
		t.Setenv("LOG_LEVEL", "error")

		cfg := NewConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.True(t, cfg.AddSource)
	})
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL_TRUE", "true")
	t.Setenv("TEST_BOOL_BAD", "maybe")

	assert.True(t, getEnvBool("TEST_BOOL_TRUE", false))
	assert.True(t, getEnvBool("TEST_BOOL_BAD", true))
	assert.False(t, getEnvBool("TEST_BOOL_MISSING", false))
}

func TestInit_FileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	Init(&Config{Level: "debug", Format: "json", Output: "file:" + path})
	defer Init(&Config{Level: "info", Format: "console", Output: "stdout"})

	assert.True(t, IsDebugMode())
	NewModuleLogger("summary", "ingest").Debug("batch inserted", "count", 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"batch inserted"`)
	assert.Contains(t, string(data), `"module":"summary"`)
	assert.Contains(t, string(data), `"service":"summarydesk-backend"`)
}

func TestLogCtxFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUser(ctx, "admin")

	attrs := LogCtxFromContext(ctx)
	require.Len(t, attrs, 2)
	assert.Equal(t, "request_id", attrs[0].Key)
	assert.Equal(t, "req-1", attrs[0].Value.String())
	assert.Equal(t, "user", attrs[1].Key)

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Empty(t, LogCtxFromContext(context.Background()))
}

package log

import (
	"context"
	"log/slog"
)

type ctxKey string

// 上下文键
const (
	// RequestContextID HTTP 请求 ID
	RequestContextID ctxKey = "request_id"
	// UserContextID 当前登录用户
	UserContextID ctxKey = "user"
	// ClientContextID 调用方标识（API Key 指纹或 IP）
	ClientContextID ctxKey = "client"
)

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithUser 在上下文中添加用户名
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, UserContextID, user)
}

// WithClient 在上下文中添加调用方标识
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, ClientContextID, client)
}

// RequestIDFromContext 读取请求 ID
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(RequestContextID).(string)
	return v
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range []ctxKey{RequestContextID, UserContextID, ClientContextID} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}

// FromContext 返回附带上下文字段的 logger
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	attrs := LogCtxFromContext(ctx)
	if len(attrs) == 0 {
		return logger
	}
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return logger.With(args...)
}

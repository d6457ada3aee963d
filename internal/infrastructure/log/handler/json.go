package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// JSONHandler JSON 格式日志处理器，每条记录一行
type JSONHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	enc   *json.Encoder
	attrs []slog.Attr
	group string
}

// NewJSONHandler 创建 JSON 处理器
func NewJSONHandler(out io.Writer, opts *slog.HandlerOptions) *JSONHandler {
	h := &JSONHandler{mu: &sync.Mutex{}, enc: json.NewEncoder(out)}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled 检查日志级别是否启用
func (h *JSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.opts.Level == nil {
		return level >= slog.LevelInfo
	}
	return level >= h.opts.Level.Level()
}

// Handle 处理日志记录
func (h *JSONHandler) Handle(_ context.Context, r slog.Record) error {
	obj := make(map[string]any, 4+len(h.attrs)+r.NumAttrs())
	obj["time"] = r.Time.Format(time.RFC3339Nano)
	obj["level"] = r.Level.String()
	obj["msg"] = r.Message

	for _, a := range h.attrs {
		obj[a.Key] = attrValue(a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		obj[key] = attrValue(a.Value)
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		obj["source"] = map[string]any{"file": f.File, "line": f.Line}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enc.Encode(obj)
}

// attrValue 将 slog 值转换为可 JSON 编码的值
func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindGroup:
		m := make(map[string]any)
		for _, a := range v.Group() {
			m[a.Key] = attrValue(a.Value)
		}
		return m
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}

// WithAttrs 返回带有额外属性的处理器
func (h *JSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup 返回带有分组的处理器
func (h *JSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

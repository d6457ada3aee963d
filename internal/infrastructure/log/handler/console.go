package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
)

// ANSI 颜色代码
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

// ConsoleHandler 控制台日志处理器（彩色单行输出）
type ConsoleHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
	group string
}

// NewConsoleHandler 创建控制台处理器
func NewConsoleHandler(out io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	h := &ConsoleHandler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled 检查日志级别是否启用
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.opts.Level == nil {
		return level >= slog.LevelInfo
	}
	return level >= h.opts.Level.Level()
}

// Handle 处理日志记录
// 格式：LEVEL 时间 [module/component] 消息 key=value...
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var module, component string
	var rest []slog.Attr

	collect := func(a slog.Attr) {
		switch a.Key {
		case "module":
			module = a.Value.String()
		case "component":
			component = a.Value.String()
		case "service":
			// 控制台输出省略服务名
		default:
			rest = append(rest, a)
		}
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		collect(a)
		return true
	})

	prefix := ""
	switch {
	case module != "" && component != "":
		prefix = fmt.Sprintf(" [%s/%s]", module, component)
	case module != "":
		prefix = fmt.Sprintf(" [%s]", module)
	}

	line := fmt.Sprintf("%s%-5s%s %s%s %s",
		levelColor(r.Level), r.Level.String(), colorReset,
		r.Time.Format("2006-01-02T15:04:05.000Z07:00"),
		prefix,
		r.Message,
	)
	for _, a := range rest {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
	}
	if h.opts.AddSource && r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := frames.Next()
		line += fmt.Sprintf(" (%s:%d)", filepath.Base(f.File), f.Line)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

// WithAttrs 返回带有额外属性的处理器
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup 返回带有分组的处理器
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
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

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// 编辑器保存文件时会连续触发多个事件，合并后再重新加载
const reloadDebounce = 200 * time.Millisecond

// Watcher 监听配置文件变化，重新加载后通知订阅者
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	handlers []func(*Config)
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher 创建配置文件监听器
// 监听文件所在目录，以兼容原子替换（rename）式保存
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	return &Watcher{
		path:    path,
		watcher: fw,
		done:    make(chan struct{}),
	}, nil
}

// OnChange 注册配置变化回调
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

// Start 启动监听循环
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop 停止监听
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	logger := log.NewModuleLogger("config", "watcher")
	target := filepath.Clean(w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			cfg, err := Load(w.path)
			if err != nil {
				logger.Warn("Failed to reload config", "path", w.path, "error", err)
				continue
			}
			logger.Info("Config reloaded", "path", w.path)
			w.notify(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) notify(cfg *Config) {
	w.mu.Lock()
	handlers := append([]func(*Config){}, w.handlers...)
	w.mu.Unlock()
	for _, fn := range handlers {
		fn(cfg)
	}
}

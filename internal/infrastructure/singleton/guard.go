package singleton

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// HealthCheckTimeout 探测已有实例的超时时间
const HealthCheckTimeout = 2 * time.Second

// ErrAlreadyRunning 端口上已有健康的实例
var ErrAlreadyRunning = errors.New("another instance is already serving on this port")

// ErrPortBusy 端口被占用，但占用者未通过健康检查
var ErrPortBusy = errors.New("port is in use by an unhealthy process")

// Guard 启动前检查 HTTP 端口
type Guard struct {
	// HealthPath 已有实例的健康检查路径
	HealthPath string
	client     *http.Client
}

// NewGuard 创建端口检查器
func NewGuard(healthPath string) *Guard {
	return &Guard{
		HealthPath: healthPath,
		client:     &http.Client{Timeout: HealthCheckTimeout},
	}
}

// Check 确认 addr 可以监听
// 已有健康实例时返回 ErrAlreadyRunning，调用方应直接退出
func (g *Guard) Check(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		// 实际监听由 HTTP 服务器负责
		return listener.Close()
	}
	if !isAddrInUse(err) {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if g.isHealthy(addr) {
		return ErrAlreadyRunning
	}
	return fmt.Errorf("%w: %s", ErrPortBusy, addr)
}

func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows: WSAEADDRINUSE
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == 10048 {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}

func (g *Guard) isHealthy(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	resp, err := g.client.Get("http://" + net.JoinHostPort(host, port) + g.HealthPath)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

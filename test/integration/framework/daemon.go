//go:build integration
// +build integration

// TestDaemon 管理独立 summarydesk 进程的启动与关闭
package framework

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"time"
)

// 测试进程使用的固定凭证
const (
	TestAPIKey   = "integration-api-key"
	TestUsername = "admin"
	TestPassword = "integration-password"
)

// TestDaemon 测试服务进程
type TestDaemon struct {
	Name     string // 角色名称
	HTTPPort int    // HTTP 端口
	DataDir  string // 数据目录（隔离）

	env     []string
	cmd     *exec.Cmd
	baseURL string
}

// DaemonOption 服务进程配置选项
type DaemonOption func(*TestDaemon)

// WithEnv 追加环境变量（如 INGEST_RATE_PER_SECOND=1）
func WithEnv(kv ...string) DaemonOption {
	return func(d *TestDaemon) {
		d.env = append(d.env, kv...)
	}
}

// NewTestDaemon 创建测试服务进程
func NewTestDaemon(binaryPath, name string, opts ...DaemonOption) (*TestDaemon, error) {
	httpPort, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate HTTP port: %w", err)
	}

	dataDir, err := os.MkdirTemp("", fmt.Sprintf("summarydesk-test-%s-", name))
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	d := &TestDaemon{
		Name:     name,
		HTTPPort: httpPort,
		DataDir:  dataDir,
		baseURL:  fmt.Sprintf("http://localhost:%d", httpPort),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.cmd = exec.Command(binaryPath)
	d.cmd.Env = append(os.Environ(),
		fmt.Sprintf("SUMMARYDESK_DATA_DIR=%s", dataDir),
		fmt.Sprintf("SUMMARYDESK_HTTP_PORT=:%d", httpPort),
		"API_KEY="+TestAPIKey,
		"DASHBOARD_USERNAME="+TestUsername,
		"DASHBOARD_PASSWORD="+TestPassword,
		"GIN_MODE=test",
	)
	d.cmd.Env = append(d.cmd.Env, d.env...)
	d.cmd.Stdout = os.Stdout
	d.cmd.Stderr = os.Stderr

	return d, nil
}

// Start 启动服务进程并等待就绪
func (d *TestDaemon) Start() error {
	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon %s: %w", d.Name, err)
	}
	return d.waitForReady(30 * time.Second)
}

// Stop 停止服务进程并清理数据目录
func (d *TestDaemon) Stop() error {
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Signal(os.Interrupt)

		done := make(chan error, 1)
		go func() {
			done <- d.cmd.Wait()
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			_ = d.cmd.Process.Kill()
			<-done
		}
	}
	return os.RemoveAll(d.DataDir)
}

// BaseURL 返回 HTTP 基础 URL
func (d *TestDaemon) BaseURL() string {
	return d.baseURL
}

// waitForReady 等待 health 端点就绪
func (d *TestDaemon) waitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(d.baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("daemon %s failed to become ready within %v", d.Name, timeout)
}

// getFreePort 获取一个空闲的 TCP 端口
func getFreePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

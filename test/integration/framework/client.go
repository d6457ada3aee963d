//go:build integration
// +build integration

// APIClient 基于 resty 封装的 HTTP 客户端，直接复用业务结构体
package framework

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/summarydesk/backend/internal/application/auth"
	appSummary "github.com/summarydesk/backend/internal/application/summary"
	"github.com/summarydesk/backend/internal/interfaces/http/response"
)

// APIClient 测试用 HTTP 客户端
type APIClient struct {
	client *resty.Client
}

// NewAPIClient 创建测试用 HTTP 客户端
func NewAPIClient(baseURL string) *APIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &APIClient{client: client}
}

// APIResponse 通用 API 响应（复用 response.Response 的 JSON 结构）
type APIResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// do 执行请求并统一处理成功/错误响应的 JSON 解析
// resty 的 SetResult 仅在 2xx 时解析，SetError 在 4xx/5xx 时解析
func do[T any](r *resty.Request, result *T) *resty.Request {
	return r.SetResult(result).SetError(result)
}

// --- 健康检查 ---

// HealthCheck 健康检查
func (c *APIClient) HealthCheck() error {
	resp, err := c.client.R().Get("/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode())
	}
	return nil
}

// --- 写入 ---

// IngestResponse 写入响应：成功与失败的字段不同，合并到一个结构体
type IngestResponse struct {
	appSummary.IngestResult
	Error   string      `json:"error"`
	Details interface{} `json:"details"`
}

// Ingest 以 API Key 写入一批摘要，返回 HTTP 状态码
func (c *APIClient) Ingest(apiKey string, body interface{}) (int, *IngestResponse, error) {
	var result IngestResponse
	resp, err := do(c.client.R().
		SetHeader("X-API-Key", apiKey).
		SetBody(body), &result).
		Post("/api/v1/conversations")
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), &result, nil
}

// --- 认证 ---

// Login 登录并在后续请求中携带会话令牌
func (c *APIClient) Login(username, password string) (*APIResponse[auth.Session], error) {
	var result APIResponse[auth.Session]
	_, err := do(c.client.R().SetBody(map[string]string{
		"username": username,
		"password": password,
	}), &result).
		Post("/api/v1/auth/login")
	if err != nil {
		return nil, err
	}
	if result.Code == 0 {
		c.client.SetAuthToken(result.Data.Token)
	}
	return &result, nil
}

// Logout 注销当前会话
func (c *APIClient) Logout() error {
	_, err := c.client.R().Post("/api/v1/auth/logout")
	return err
}

// --- 仪表盘 ---

// Dashboard 获取分组数据，返回 HTTP 状态码
func (c *APIClient) Dashboard() (int, *APIResponse[appSummary.DashboardDTO], error) {
	var result APIResponse[appSummary.DashboardDTO]
	resp, err := do(c.client.R(), &result).Get("/api/v1/dashboard")
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), &result, nil
}

// Detail 获取摘要详情
func (c *APIClient) Detail(id int64) (int, *APIResponse[appSummary.SummaryDetailDTO], error) {
	var result APIResponse[appSummary.SummaryDetailDTO]
	resp, err := do(c.client.R(), &result).Get(fmt.Sprintf("/api/v1/summaries/%d", id))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), &result, nil
}

// Delete 删除单条摘要
func (c *APIClient) Delete(id int64) (int, *response.DeleteResult, error) {
	var result response.DeleteResult
	resp, err := do(c.client.R(), &result).Delete(fmt.Sprintf("/api/v1/summaries/%d", id))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), &result, nil
}

// DeleteBatch 批量删除摘要
func (c *APIClient) DeleteBatch(ids []int64) (*appSummary.BatchDeleteResult, error) {
	var result appSummary.BatchDeleteResult
	_, err := do(c.client.R().SetBody(map[string][]int64{"ids": ids}), &result).
		Post("/api/v1/summaries/delete")
	return &result, err
}

package mcp

import (
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appSummary "github.com/summarydesk/backend/internal/application/summary"
	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// Version MCP 服务器版本
const Version = "0.1.0"

// MCPServer MCP 服务器
type MCPServer struct {
	server   *mcp.Server
	handler  http.Handler
	query    *appSummary.QueryService
	deletion *appSummary.DeletionService
	logger   *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(
	query *appSummary.QueryService,
	deletion *appSummary.DeletionService,
) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "summarydesk",
			Version: Version,
		},
		nil, // 使用默认能力
	)

	mcpServer := &MCPServer{
		server:   server,
		query:    query,
		deletion: deletion,
		logger:   log.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get all conversation summaries grouped for the dashboard: Conversation parents with their Agent/VirtualAgent children, shared groups of siblings without a parent, standalone records, and counts by type. No parameters required.",
	}, mcpServer.getDashboardTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_summaries",
		Description: "List conversation summaries without grouping. Parameters: summary_type (string, optional) - Agent|VirtualAgent|Conversation; media_type (string, optional); language (string, optional); order (string, optional) - asc|desc by dateCreated, defaults to desc.",
	}, mcpServer.listSummariesTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_summary",
		Description: "Get one conversation summary by its numeric id, with insights and, for Conversation records, the children that would be deleted together with it. Parameters: id (int, required).",
	}, mcpServer.getSummaryTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_summary",
		Description: "Delete conversation summaries by numeric id. Deleting the Conversation record that parents a group also deletes every other record with that conversationId, including duplicate Conversation records; a duplicate deletes only itself. Parameters: ids (array of int, required). Returns per-id failures; a missing id is reported as not found.",
	}, mcpServer.deleteSummaryTool)

	// 创建 SSE Handler
	mcpServer.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			// 每个请求返回同一个服务器实例
			return server
		},
		nil, // SSEOptions，使用默认值
	)
	return mcpServer
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}

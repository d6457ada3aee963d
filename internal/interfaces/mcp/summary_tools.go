package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appSummary "github.com/summarydesk/backend/internal/application/summary"
	domainSummary "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// GetDashboardInput 仪表盘工具输入（空输入）
type GetDashboardInput struct{}

// ListSummariesInput 列表工具输入
type ListSummariesInput struct {
	SummaryType string `json:"summary_type,omitempty" jsonschema:"Agent, VirtualAgent or Conversation"`
	MediaType   string `json:"media_type,omitempty" jsonschema:"Channel such as call, email or message"`
	Language    string `json:"language,omitempty" jsonschema:"Language code"`
	Order       string `json:"order,omitempty" jsonschema:"asc or desc by dateCreated"`
}

// ListSummariesOutput 列表工具输出
type ListSummariesOutput struct {
	Summaries []*appSummary.SummaryDTO `json:"summaries" jsonschema:"Matching summaries"`
	Count     int                      `json:"count" jsonschema:"Number of summaries returned"`
}

// GetSummaryInput 详情工具输入
type GetSummaryInput struct {
	ID int64 `json:"id" jsonschema:"Numeric summary id"`
}

// GetSummaryOutput 详情工具输出
type GetSummaryOutput struct {
	Found  bool                         `json:"found" jsonschema:"Whether the summary exists"`
	Detail *appSummary.SummaryDetailDTO `json:"detail,omitempty" jsonschema:"Summary detail"`
}

// DeleteSummaryInput 删除工具输入
type DeleteSummaryInput struct {
	IDs []int64 `json:"ids" jsonschema:"Numeric summary ids to delete"`
}

// getDashboardTool 仪表盘
func (s *MCPServer) getDashboardTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetDashboardInput,
) (*mcp.CallToolResult, appSummary.DashboardDTO, error) {
	out, err := s.query.Dashboard(ctx)
	if err != nil {
		return nil, appSummary.DashboardDTO{}, err
	}
	return nil, *out, nil
}

// listSummariesTool 平铺列表
func (s *MCPServer) listSummariesTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListSummariesInput,
) (*mcp.CallToolResult, ListSummariesOutput, error) {
	summaries, err := s.query.List(ctx, appSummary.ListQuery{
		SummaryType: input.SummaryType,
		MediaType:   input.MediaType,
		Language:    input.Language,
		Order:       input.Order,
	})
	if err != nil {
		return nil, ListSummariesOutput{}, err
	}
	return nil, ListSummariesOutput{Summaries: summaries, Count: len(summaries)}, nil
}

// getSummaryTool 摘要详情
func (s *MCPServer) getSummaryTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetSummaryInput,
) (*mcp.CallToolResult, GetSummaryOutput, error) {
	detail, err := s.query.Detail(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainSummary.ErrNotFound) {
			return nil, GetSummaryOutput{Found: false}, nil
		}
		return nil, GetSummaryOutput{}, err
	}
	return nil, GetSummaryOutput{Found: true, Detail: detail}, nil
}

// deleteSummaryTool 删除摘要
func (s *MCPServer) deleteSummaryTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DeleteSummaryInput,
) (*mcp.CallToolResult, appSummary.BatchDeleteResult, error) {
	if len(input.IDs) == 0 {
		return nil, appSummary.BatchDeleteResult{}, errors.New("ids is required")
	}
	result := s.deletion.DeleteMany(ctx, input.IDs)
	log.FromContext(ctx, s.logger).Info("Summaries deleted via MCP",
		"requested", len(input.IDs),
		"deleted", result.Deleted,
		"failed", len(result.Failed),
	)
	return nil, *result, nil
}

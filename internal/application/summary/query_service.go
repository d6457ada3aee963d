package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domain "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// ErrInvalidQuery 列表查询参数不合法
var ErrInvalidQuery = errors.New("invalid query")

// QueryService 摘要查询用例（仪表盘、列表、详情）
type QueryService struct {
	repo      domain.Repository
	domainSvc *domain.Service
	logger    *slog.Logger
}

// NewQueryService 创建查询服务
func NewQueryService(repo domain.Repository, domainSvc *domain.Service) *QueryService {
	return &QueryService{
		repo:      repo,
		domainSvc: domainSvc,
		logger:    log.NewModuleLogger("summary", "query"),
	}
}

// Dashboard 读取全部记录并重新计算分组
func (s *QueryService) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	// 升序读取：重复父节点时以最早写入者为准
	records, err := s.repo.ListSummaries(ctx, domain.ListFilter{Order: domain.OrderAsc})
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	p := s.domainSvc.Classify(records)

	out := &DashboardDTO{
		Groups:       make([]*GroupDTO, 0, len(p.Groups)),
		SharedGroups: make([]*SharedGroupDTO, 0, len(p.SharedGroups)),
		Standalones:  toSummaryDTOs(p.Standalones),
		Counts: CountsDTO{
			Total:        p.Counts.Total,
			Agent:        p.Counts.Agent,
			VirtualAgent: p.Counts.VirtualAgent,
			Conversation: p.Counts.Conversation,
		},
	}
	for _, g := range p.Groups {
		out.Groups = append(out.Groups, &GroupDTO{
			Parent:   toSummaryDTO(g.Parent),
			Children: toSummaryDTOs(g.Children),
		})
	}
	for _, sg := range p.SharedGroups {
		out.SharedGroups = append(out.SharedGroups, &SharedGroupDTO{
			ConversationID: sg.Key,
			Members:        toSummaryDTOs(sg.Members),
		})
	}

	log.FromContext(ctx, s.logger).Debug("Dashboard computed",
		"total", p.Counts.Total,
		"groups", len(p.Groups),
		"shared_groups", len(p.SharedGroups),
		"standalones", len(p.Standalones),
	)
	return out, nil
}

// List 按条件列出摘要（平铺，不分组）
func (s *QueryService) List(ctx context.Context, q ListQuery) ([]*SummaryDTO, error) {
	if err := validate.Struct(&q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	filter := domain.ListFilter{
		SummaryType: domain.SummaryType(q.SummaryType),
		MediaType:   q.MediaType,
		Language:    q.Language,
		Order:       domain.OrderDesc,
	}
	if q.Order == "asc" {
		filter.Order = domain.OrderAsc
	}

	records, err := s.repo.ListSummaries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return toSummaryDTOs(records), nil
}

// Detail 摘要详情，包含洞察以及删除时会一并删除的子记录
func (s *QueryService) Detail(ctx context.Context, id int64) (*SummaryDetailDTO, error) {
	record, err := s.repo.FindSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find summary: %w", err)
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}

	insights, err := s.repo.ListInsights(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	out := &SummaryDetailDTO{
		Summary:  toSummaryDTO(record),
		Insights: toInsightViews(insights),
		Children: []*SummaryDTO{},
	}

	if record.IsConversation() {
		// 与 DeleteOne 使用同一成员范围与父节点判定
		group, err := s.repo.ListGroup(ctx, record.GroupingKey())
		if err != nil {
			return nil, fmt.Errorf("failed to list group: %w", err)
		}
		children, cascade := s.domainSvc.CascadePlan(record, group)
		out.ChildCount = len(children)
		out.IsParent = cascade && len(children) > 0
		out.Children = toSummaryDTOs(children)
	}
	return out, nil
}

package summary

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domain "github.com/summarydesk/backend/internal/domain/summary"
)

// IngestRequest 批量写入请求
type IngestRequest struct {
	Entities []SummaryEntity `json:"entities" validate:"required"`
}

// SummaryEntity 单条摘要实体
type SummaryEntity struct {
	SummaryType    string          `json:"summaryType" validate:"required,oneof=Agent VirtualAgent Conversation"`
	MediaType      string          `json:"mediaType" validate:"max=64"`
	Language       string          `json:"language" validate:"max=16"`
	SummaryID      string          `json:"summaryId" validate:"required,max=255"`
	AgentID        string          `json:"agentId,omitempty" validate:"max=255"`
	SourceID       string          `json:"sourceId" validate:"max=255"`
	Summary        string          `json:"summary"`
	Generated      bool            `json:"generated"`
	DateCreated    string          `json:"dateCreated" validate:"required"`
	ConversationID string          `json:"conversationId,omitempty" validate:"max=255"`
	Insights       InsightsPayload `json:"insights,omitempty"`
}

// InsightDTO 洞察
type InsightDTO struct {
	Type        string `json:"type" validate:"max=64"`
	Title       string `json:"title" validate:"max=512"`
	Description string `json:"description"`
	Outcome     string `json:"outcome,omitempty"`
}

// errInsightsShape insights 既不是数组也不是字符串
var errInsightsShape = errors.New("insights must be an array or a JSON-encoded array string")

// InsightsPayload insights 字段的两种形态：JSON 数组，或包含 JSON 数组的字符串
// 字符串形态在解码时立即解析，解析失败记录在 DecodeErr 中而不是让整个请求失败
type InsightsPayload struct {
	Items     []InsightDTO
	Encoded   bool   // 原始值是否为字符串
	Raw       string // 字符串形态的原始内容
	DecodeErr error  // 字符串解析失败的原因
}

// UnmarshalJSON 实现 json.Unmarshaler
func (p *InsightsPayload) UnmarshalJSON(data []byte) error {
	*p = InsightsPayload{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &p.Items)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		p.Encoded = true
		p.Raw = s
		if strings.TrimSpace(s) == "" {
			return nil
		}
		var items []InsightDTO
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			p.DecodeErr = err
			return nil
		}
		p.Items = items
		return nil
	default:
		return errInsightsShape
	}
}

// MarshalJSON 实现 json.Marshaler，始终输出数组
func (p InsightsPayload) MarshalJSON() ([]byte, error) {
	if p.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Items)
}

// InsertedRef 写入成功的摘要引用
type InsertedRef struct {
	ID        int64  `json:"id"`
	SummaryID string `json:"summaryId"`
}

// IngestResult 批量写入结果
type IngestResult struct {
	Success       bool          `json:"success"`
	Inserted      int           `json:"inserted"`
	Conversations []InsertedRef `json:"conversations"`
}

// SummaryDTO 摘要
type SummaryDTO struct {
	ID             int64  `json:"id"`
	SummaryType    string `json:"summaryType"`
	MediaType      string `json:"mediaType"`
	Language       string `json:"language"`
	SummaryID      string `json:"summaryId"`
	AgentID        string `json:"agentId,omitempty"`
	SourceID       string `json:"sourceId"`
	Summary        string `json:"summary"`
	Generated      bool   `json:"generated"`
	DateCreated    string `json:"dateCreated"`
	CreatedAt      string `json:"createdAt"`
	ConversationID string `json:"conversationId,omitempty"`
	InsightCount   int    `json:"insightCount"`
}

// GroupDTO 父节点及其子记录
type GroupDTO struct {
	Parent   *SummaryDTO   `json:"parent"`
	Children []*SummaryDTO `json:"children"`
}

// SharedGroupDTO 共享分组键的兄弟记录
type SharedGroupDTO struct {
	ConversationID string        `json:"conversationId"`
	Members        []*SummaryDTO `json:"members"`
}

// CountsDTO 按类型统计
type CountsDTO struct {
	Total        int `json:"total"`
	Agent        int `json:"agent"`
	VirtualAgent int `json:"virtualAgent"`
	Conversation int `json:"conversation"`
}

// DashboardDTO 仪表盘数据
type DashboardDTO struct {
	Groups       []*GroupDTO       `json:"groups"`
	SharedGroups []*SharedGroupDTO `json:"sharedGroups"`
	Standalones  []*SummaryDTO     `json:"standalones"`
	Counts       CountsDTO         `json:"counts"`
}

// InsightView 洞察（读取）
type InsightView struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Outcome     string `json:"outcome,omitempty"`
}

// SummaryDetailDTO 摘要详情
type SummaryDetailDTO struct {
	Summary  *SummaryDTO    `json:"summary"`
	Insights []*InsightView `json:"insights"`
	// IsParent 删除时是否会级联删除子记录
	IsParent   bool          `json:"isParent"`
	ChildCount int           `json:"childCount"`
	Children   []*SummaryDTO `json:"children"`
}

// ListQuery 列表查询参数
type ListQuery struct {
	SummaryType string `form:"summaryType" validate:"omitempty,oneof=Agent VirtualAgent Conversation"`
	MediaType   string `form:"mediaType"`
	Language    string `form:"language"`
	Order       string `form:"order" validate:"omitempty,oneof=asc desc"`
}

// DeleteFailure 批量删除中失败的条目
type DeleteFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// BatchDeleteResult 批量删除结果
type BatchDeleteResult struct {
	Success bool `json:"success"`
	// Deleted 成功删除的请求 ID 数量
	Deleted int `json:"deleted"`
	// Records 实际删除的记录数（含级联删除的子记录）
	Records int64           `json:"records"`
	Failed  []DeleteFailure `json:"failed,omitempty"`
}

// toSummaryDTO 转换为 DTO
func toSummaryDTO(r *domain.Record) *SummaryDTO {
	return &SummaryDTO{
		ID:             r.ID,
		SummaryType:    string(r.SummaryType),
		MediaType:      r.MediaType,
		Language:       r.Language,
		SummaryID:      r.SummaryID,
		AgentID:        r.AgentID,
		SourceID:       r.SourceID,
		Summary:        r.Summary,
		Generated:      r.Generated,
		DateCreated:    r.DateCreated.UTC().Format(time.RFC3339Nano),
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339Nano),
		ConversationID: r.ConversationID,
		InsightCount:   r.InsightCount,
	}
}

func toSummaryDTOs(records []*domain.Record) []*SummaryDTO {
	out := make([]*SummaryDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toSummaryDTO(r))
	}
	return out
}

func toInsightViews(insights []*domain.Insight) []*InsightView {
	out := make([]*InsightView, 0, len(insights))
	for _, in := range insights {
		out = append(out, &InsightView{
			ID:          in.ID,
			Type:        in.Type,
			Title:       in.Title,
			Description: in.Description,
			Outcome:     in.Outcome,
		})
	}
	return out
}

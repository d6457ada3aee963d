package summary

import "time"

// SummaryType 摘要类型
type SummaryType string

const (
	// TypeAgent 人工坐席摘要
	TypeAgent SummaryType = "Agent"
	// TypeVirtualAgent 虚拟坐席（机器人）摘要
	TypeVirtualAgent SummaryType = "VirtualAgent"
	// TypeConversation 整段会话摘要，作为分组的结构性父节点
	TypeConversation SummaryType = "Conversation"
)

// AllTypes 所有合法的摘要类型
var AllTypes = []SummaryType{TypeAgent, TypeVirtualAgent, TypeConversation}

// IsValid 检查类型是否合法
func (t SummaryType) IsValid() bool {
	switch t {
	case TypeAgent, TypeVirtualAgent, TypeConversation:
		return true
	default:
		return false
	}
}

// RequiresConversationID 该类型是否必须携带 conversationId
func (t SummaryType) RequiresConversationID() bool {
	return t == TypeAgent || t == TypeVirtualAgent
}

// Record 会话摘要记录
// 创建后不可修改，只能整体删除
type Record struct {
	ID             int64       // 存储分配的自增 ID
	SummaryType    SummaryType // 摘要类型
	MediaType      string      // 渠道：call/email/message...
	Language       string      // 语言代码
	SummaryID      string      // 调用方提供的外部 ID
	AgentID        string      // 坐席 ID（仅人工坐席）
	SourceID       string      // 来源交互 ID
	Summary        string      // 摘要正文
	Generated      bool        // 是否 AI 生成
	DateCreated    time.Time   // 调用方提供的时间，排序依据
	CreatedAt      time.Time   // 入库时间
	ConversationID string      // 分组键（可选）
	InsightCount   int         // 关联洞察数量（仅查询时填充）
}

// IsConversation 是否为会话类型
func (r *Record) IsConversation() bool {
	return r.SummaryType == TypeConversation
}

// GroupingKey 返回记录的分组键
// 会话类型记录始终以自身 summaryId 作为分组键，子记录通过 conversationId 引用它；
// 其他类型使用 conversationId，为空表示独立记录
func (r *Record) GroupingKey() string {
	if r.IsConversation() {
		return r.SummaryID
	}
	return r.ConversationID
}

// Insight 摘要派生的洞察，生命周期绑定到所属摘要
type Insight struct {
	ID            int64
	OwnerRecordID int64 // 所属摘要的存储 ID（不是分组键）
	Type          string
	Title         string
	Description   string
	Outcome       string
}

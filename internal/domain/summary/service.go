package summary

import "strings"

// Service 领域服务（纯业务逻辑）
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// Validate 校验摘要记录的领域规则
func (s *Service) Validate(r *Record) error {
	if !r.SummaryType.IsValid() {
		return ErrInvalidSummaryType
	}
	if strings.TrimSpace(r.SummaryID) == "" {
		return ErrMissingSummaryID
	}
	if r.SummaryType.RequiresConversationID() && strings.TrimSpace(r.ConversationID) == "" {
		return ErrMissingConversationID
	}
	if r.IsConversation() && r.ConversationID != "" && r.ConversationID != r.SummaryID {
		return ErrConversationKeyMismatch
	}
	if r.DateCreated.IsZero() {
		return ErrMissingDateCreated
	}
	return nil
}

// Classify 对记录集合进行分组
func (s *Service) Classify(records []*Record) *Partition {
	return Classify(records)
}

// CascadePlan 计算删除 target 时需要一并删除的记录
// group 为与 target 同分组键的全部记录（按 dateCreated、ID 升序，与仪表盘读取顺序一致）。
// 只有当选的父节点会级联，其余记录（包括同键的其他会话记录）作为子记录返回；
// 非父节点只删除自身。
func (s *Service) CascadePlan(target *Record, group []*Record) (children []*Record, cascade bool) {
	if target == nil || !target.IsConversation() {
		return nil, false
	}
	parent := ElectParent(group)
	if parent == nil || parent.ID != target.ID {
		return nil, false
	}
	children = make([]*Record, 0, len(group))
	for _, r := range group {
		if r != nil && r.ID != target.ID {
			children = append(children, r)
		}
	}
	return children, true
}

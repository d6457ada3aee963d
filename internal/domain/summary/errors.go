package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 摘要不存在
	ErrNotFound = errors.New("summary not found")
	// ErrInvalidSummaryType 非法摘要类型
	ErrInvalidSummaryType = errors.New("invalid summaryType")
	// ErrMissingSummaryID 缺少 summaryId
	ErrMissingSummaryID = errors.New("summaryId is required")
	// ErrMissingConversationID Agent/VirtualAgent 缺少 conversationId
	ErrMissingConversationID = errors.New("conversationId is required for Agent and VirtualAgent summaries")
	// ErrConversationKeyMismatch 会话类型记录的 conversationId 与 summaryId 不一致
	ErrConversationKeyMismatch = errors.New("conversationId must equal summaryId for Conversation summaries")
	// ErrMissingDateCreated 缺少 dateCreated
	ErrMissingDateCreated = errors.New("dateCreated is required")
	// ErrInvalidDateCreated dateCreated 无法解析
	ErrInvalidDateCreated = errors.New("dateCreated must be an RFC 3339 timestamp")
)

// ValidationError 批次中某个实体的校验错误
type ValidationError struct {
	Index int   // 实体在批次中的下标
	Err   error // 具体原因
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entities[%d]: %v", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

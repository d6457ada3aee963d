package summary

import "context"

// SortOrder 按 dateCreated 排序方向
type SortOrder int

const (
	// OrderDesc 最新在前（仪表盘默认）
	OrderDesc SortOrder = iota
	// OrderAsc 最早在前（组内排序）
	OrderAsc
)

// ListFilter 列表查询条件，空字段表示不过滤
type ListFilter struct {
	SummaryType SummaryType
	MediaType   string
	Language    string
	Order       SortOrder
}

// Repository 摘要仓储接口
//
//go:generate mockery --name=Repository --output=./mocks --outpkg=mocks --case=underscore
type Repository interface {
	// InsertSummary 插入摘要，返回存储 ID
	InsertSummary(ctx context.Context, record *Record) (int64, error)
	// InsertInsight 为指定摘要插入洞察
	InsertInsight(ctx context.Context, ownerID int64, insight *Insight) (int64, error)
	// FindSummary 按 ID 查找，不存在时返回 nil, nil
	FindSummary(ctx context.Context, id int64) (*Record, error)
	// ListSummaries 列出摘要（附带洞察数量），同一时间按 ID 同向排序
	ListSummaries(ctx context.Context, filter ListFilter) ([]*Record, error)
	// ListGroup 列出分组键为 key 的全部记录（参见 Record.GroupingKey），
	// 按 dateCreated、ID 升序，与仪表盘读取顺序一致
	ListGroup(ctx context.Context, key string) ([]*Record, error)
	// ListInsights 列出摘要的洞察，按 ID 升序
	ListInsights(ctx context.Context, ownerID int64) ([]*Insight, error)
	// DeleteSummary 删除单条摘要（洞察级联删除），返回影响行数
	DeleteSummary(ctx context.Context, id int64) (int64, error)
	// DeleteGroup 删除分组键为 key 的记录（ID 为 exceptID 的除外），返回影响行数
	// 成员范围与 ListGroup 相同
	DeleteGroup(ctx context.Context, key string, exceptID int64) (int64, error)
	// WithinTx 在事务中执行 fn，fn 返回错误时回滚
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

package storage

import "github.com/google/wire"

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideDB,            // 数据库连接（含建表）
	NewSummaryRepository, // 会话摘要仓储
)

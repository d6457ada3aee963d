package summary

import "github.com/google/wire"

// ProviderSet 摘要应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewIngestService,
	NewQueryService,
	NewDeletionService,
	// 注意：LanguageDetector/Recorder 接口绑定在顶层 wire.go 中处理
)

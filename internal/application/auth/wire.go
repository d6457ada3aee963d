package auth

import "github.com/google/wire"

// ProviderSet 认证应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	// 注意：LoginRecorder 接口绑定在顶层 wire.go 中处理
)

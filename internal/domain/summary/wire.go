package summary

import "github.com/google/wire"

// ProviderSet 摘要领域层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)

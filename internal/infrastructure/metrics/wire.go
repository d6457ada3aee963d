package metrics

import "github.com/google/wire"

// ProviderSet 指标 ProviderSet
var ProviderSet = wire.NewSet(
	NewMetrics,
)

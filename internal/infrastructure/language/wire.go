package language

import "github.com/google/wire"

// ProviderSet 语言识别 ProviderSet
var ProviderSet = wire.NewSet(
	NewDetector,
)

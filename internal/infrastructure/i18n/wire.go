package i18n

import "github.com/google/wire"

// ProviderSet 本地化与品牌 ProviderSet
var ProviderSet = wire.NewSet(
	NewCatalog,
	NewBrandingProvider,
)

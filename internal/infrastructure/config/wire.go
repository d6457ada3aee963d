package config

import "github.com/google/wire"

// ProviderSet 配置 ProviderSet
// *Config 由调用方（main）加载后传入注入器
var ProviderSet = wire.NewSet(
	NewDatabaseConfig,
	NewServerConfig,
	NewAuthConfig,
	NewUIConfig,
)

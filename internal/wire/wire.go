//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/summarydesk/backend/internal/application"
	"github.com/summarydesk/backend/internal/application/auth"
	appSummary "github.com/summarydesk/backend/internal/application/summary"
	"github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure"
	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/language"
	"github.com/summarydesk/backend/internal/infrastructure/metrics"
	"github.com/summarydesk/backend/internal/interfaces"
)

// InitializeAll 初始化所有服务（HTTP + MCP）
func InitializeAll(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		summary.ProviderSet,        // 领域层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：应用层端口 -> 基础设施实现
		wire.Bind(new(appSummary.LanguageDetector), new(*language.Detector)),
		wire.Bind(new(appSummary.Recorder), new(*metrics.Metrics)),
		wire.Bind(new(auth.LoginRecorder), new(*metrics.Metrics)),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil, nil
}

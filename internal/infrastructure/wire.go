package infrastructure

import (
	"github.com/google/wire"

	"github.com/summarydesk/backend/internal/infrastructure/config"
	"github.com/summarydesk/backend/internal/infrastructure/i18n"
	"github.com/summarydesk/backend/internal/infrastructure/language"
	"github.com/summarydesk/backend/internal/infrastructure/metrics"
	"github.com/summarydesk/backend/internal/infrastructure/storage"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	i18n.ProviderSet,
	language.ProviderSet,
	metrics.ProviderSet,
)

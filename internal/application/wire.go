package application

import (
	"github.com/google/wire"

	"github.com/summarydesk/backend/internal/application/auth"
	"github.com/summarydesk/backend/internal/application/summary"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	summary.ProviderSet,
	auth.ProviderSet,
)

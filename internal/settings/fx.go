package settings

import (
	"github.com/dillondm/Invoice-Managment-systems/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(service.NewService),
)

package dashboard

import (
	"github.com/dillondm/Invoice-Managment-systems/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(service.NewService),
)

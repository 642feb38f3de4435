package audit

import (
	"github.com/dillondm/Invoice-Managment-systems/internal/audit/repository"
	"github.com/dillondm/Invoice-Managment-systems/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

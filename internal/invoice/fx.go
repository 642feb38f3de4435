package invoice

import (
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/render"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/repository"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)

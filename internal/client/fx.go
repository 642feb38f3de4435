package client

import (
	"github.com/dillondm/Invoice-Managment-systems/internal/client/repository"
	"github.com/dillondm/Invoice-Managment-systems/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

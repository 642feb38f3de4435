package auth

import (
	"github.com/dillondm/Invoice-Managment-systems/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(service.NewService),
)

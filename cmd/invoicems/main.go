package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/audit"
	"github.com/dillondm/Invoice-Managment-systems/internal/auth"
	"github.com/dillondm/Invoice-Managment-systems/internal/client"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	"github.com/dillondm/Invoice-Managment-systems/internal/dashboard"
	"github.com/dillondm/Invoice-Managment-systems/internal/events"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice"
	"github.com/dillondm/Invoice-Managment-systems/internal/migration"
	"github.com/dillondm/Invoice-Managment-systems/internal/observability/logger"
	"github.com/dillondm/Invoice-Managment-systems/internal/observability/tracing"
	"github.com/dillondm/Invoice-Managment-systems/internal/scheduler"
	"github.com/dillondm/Invoice-Managment-systems/internal/seed"
	"github.com/dillondm/Invoice-Managment-systems/internal/server"
	"github.com/dillondm/Invoice-Managment-systems/internal/settings"
	"github.com/dillondm/Invoice-Managment-systems/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
			if err := migration.Run(conn, log); err != nil {
				return err
			}
			if !cfg.IsProduction() && cfg.Bootstrap.EnsureDemoAccount {
				return seed.EnsureDemoAccount(conn)
			}
			return nil
		}),

		events.Module,
		auth.Module,
		invoice.Module,
		client.Module,
		dashboard.Module,
		settings.Module,
		audit.Module,
		scheduler.Module,

		server.Module,
	)
	app.Run()
}

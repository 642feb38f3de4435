package scheduler

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(NewSweeper),
	fx.Invoke(func(lc fx.Lifecycle, sweeper *Sweeper) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				sweeper.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return sweeper.Stop(ctx)
			},
		})
	}),
)

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	authdomain "github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	clientdomain "github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	dashboarddomain "github.com/dillondm/Invoice-Managment-systems/internal/dashboard/domain"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/render"
	"github.com/dillondm/Invoice-Managment-systems/internal/observability/logger"
	"github.com/dillondm/Invoice-Managment-systems/internal/observability/metrics"
	"github.com/dillondm/Invoice-Managment-systems/internal/observability/tracing"
	settingsdomain "github.com/dillondm/Invoice-Managment-systems/internal/settings/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	log           *zap.Logger
	cfg           config.Config
	db            *gorm.DB
	authSvc       authdomain.Service
	invoiceSvc    invoicedomain.Service
	clientSvc     clientdomain.Service
	dashboardSvc  dashboarddomain.Service
	settingsSvc   settingsdomain.Service
	auditSvc      auditdomain.Service
	renderer      render.Renderer
	signInLimiter *rateLimiter
}

type Params struct {
	fx.In

	Log          *zap.Logger
	Cfg          config.Config
	DB           *gorm.DB
	AuthSvc      authdomain.Service
	InvoiceSvc   invoicedomain.Service
	ClientSvc    clientdomain.Service
	DashboardSvc dashboarddomain.Service
	SettingsSvc  settingsdomain.Service
	AuditSvc     auditdomain.Service
	Renderer     render.Renderer
}

func NewServer(p Params) *Server {
	return &Server{
		log:           p.Log.Named("server"),
		cfg:           p.Cfg,
		db:            p.DB,
		authSvc:       p.AuthSvc,
		invoiceSvc:    p.InvoiceSvc,
		clientSvc:     p.ClientSvc,
		dashboardSvc:  p.DashboardSvc,
		settingsSvc:   p.SettingsSvc,
		auditSvc:      p.AuditSvc,
		renderer:      p.Renderer,
		signInLimiter: newRateLimiter(p.Cfg.Auth.SignInLimit, p.Cfg.Auth.SignInWindow),
	}
}

// NewEngine builds the gin engine with the shared middleware stack.
func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	engine.Use(tracing.GinMiddleware())

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		log.Warn("http metrics disabled", zap.Error(err))
	}
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

// RunHTTP registers routes and ties the HTTP listener to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, s *Server, cfg config.Config, log *zap.Logger) {
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

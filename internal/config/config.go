package config

import (
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config carries all environment-driven settings for the service.
type Config struct {
	Environment string `env:"INVOICEMS_ENV,default=development"`

	HTTP struct {
		Addr string `env:"INVOICEMS_HTTP_ADDR,default=:8080"`
	}

	Database struct {
		DSN string `env:"INVOICEMS_DB_DSN,default=file:invoicems.db?_pragma=busy_timeout(5000)"`
	}

	Session struct {
		TTL        time.Duration `env:"INVOICEMS_SESSION_TTL,default=720h"`
		CookieName string        `env:"INVOICEMS_SESSION_COOKIE,default=invoicems_session"`
	}

	// Billing.TaxRate is the flat tax rate applied to every invoice
	// subtotal. Historical invoices keep the rate they were created with.
	Billing struct {
		TaxRate float64 `env:"INVOICEMS_TAX_RATE,default=0.1"`
	}

	Auth struct {
		SignInLimit  int           `env:"INVOICEMS_SIGNIN_LIMIT,default=10"`
		SignInWindow time.Duration `env:"INVOICEMS_SIGNIN_WINDOW,default=1m"`
	}

	Bootstrap struct {
		EnsureDemoAccount bool `env:"INVOICEMS_BOOTSTRAP_DEMO,default=true"`
	}

	Scheduler struct {
		SweepInterval time.Duration `env:"INVOICEMS_SWEEP_INTERVAL,default=1h"`
		BatchSize     int           `env:"INVOICEMS_SWEEP_BATCH,default=500"`
	}

	Tracing struct {
		Enabled          bool    `env:"INVOICEMS_TRACING_ENABLED,default=false"`
		ServiceName      string  `env:"INVOICEMS_TRACING_SERVICE,default=invoicems"`
		ServiceVersion   string  `env:"INVOICEMS_TRACING_VERSION,default=dev"`
		ExporterEndpoint string  `env:"INVOICEMS_TRACING_ENDPOINT,default=localhost:4317"`
		ExporterProtocol string  `env:"INVOICEMS_TRACING_PROTOCOL,default=grpc"`
		SamplingRatio    float64 `env:"INVOICEMS_TRACING_SAMPLING,default=1.0"`
	}
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

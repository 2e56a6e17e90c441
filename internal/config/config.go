package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	Port           int           `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv         string        `env:"APP_ENV" envDefault:"production"`
	BaseCurrency   string        `env:"BASE_CURRENCY" envDefault:"KRW"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(cfg.BaseCurrency))
	if len(cfg.BaseCurrency) != 3 {
		return nil, fmt.Errorf("config.Load: BASE_CURRENCY must be a 3-letter code, got %q", cfg.BaseCurrency)
	}
	if cfg.IdempotencyTTL <= 0 {
		return nil, fmt.Errorf("config.Load: IDEMPOTENCY_TTL must be positive")
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

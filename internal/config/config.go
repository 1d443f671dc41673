package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once at startup; nothing reads the environment after
// that, so a mid-run env change cannot shift tax math or reconnect anything.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         int    `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName         string `envconfig:"DB_NAME" default:"pos"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/repository/migrations"`

	// PPN (Indonesian VAT); parsed into a decimal at startup
	TaxRate string `envconfig:"TAX_RATE" default:"0.11"`

	// Empty means the sale-event poller is not started
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

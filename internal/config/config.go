package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service    Service    `envconfig:"SERVICE"`
	Experiment Experiment `envconfig:"EXPERIMENT"`
	Analytics  Analytics  `envconfig:"ANALYTICS"`
	Redis      Redis      `envconfig:"REDIS"`
	Postgres   Postgres   `envconfig:"POSTGRES"`
	SQS        SQS        `envconfig:"SQS"`
	ClickHouse ClickHouse `envconfig:"CLICKHOUSE"`
	Consumer   Consumer   `envconfig:"CONSUMER"`
}

type Service struct {
	Environment string `envconfig:"ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"API_PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"localhost:8080"`
}

// Experiment configures variant assignment. MaxAssignments of 0 keeps every
// assignment for the process lifetime.
type Experiment struct {
	MaxAssignments int `envconfig:"MAX_ASSIGNMENTS" default:"0"`
}

type Analytics struct {
	RecentLimit       int  `envconfig:"RECENT_LIMIT" default:"10"`
	ReportIntervalSec int  `envconfig:"REPORT_INTERVAL_SEC" default:"60"`
	ExportEnabled     bool `envconfig:"EXPORT_ENABLED" default:"false"`
	ExportTimeoutSec  int  `envconfig:"EXPORT_TIMEOUT_SEC" default:"5"`
}

// Redis is optional; an empty URL keeps assignments in memory.
type Redis struct {
	URL       string `envconfig:"URL" default:""`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"impactflow:assignments:"`
}

// Postgres is optional; an empty DSN uses the in-memory campaign store.
type Postgres struct {
	DSN             string `envconfig:"DSN" default:""`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"300"`
}

type SQS struct {
	Endpoint string `envconfig:"ENDPOINT"`
	QueueURL string `envconfig:"QUEUE_URL"`
	Region   string `envconfig:"REGION" default:"us-east-1"`
}

type ClickHouse struct {
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            string `envconfig:"PORT" default:"9000"`
	Database        string `envconfig:"DB" default:"default"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	UseTLS          bool   `envconfig:"USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"BATCH_SIZE_MAX" default:"2000"`
	BatchTimeoutSec int    `envconfig:"BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
	RetryDelaySec   int    `envconfig:"RETRY_DELAY_SEC" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Consumer.BatchSizeMax <= 0 {
		return fmt.Errorf("CONSUMER_BATCH_SIZE_MAX must be positive, got %d", c.Consumer.BatchSizeMax)
	}
	if c.Consumer.BatchTimeoutSec <= 0 {
		return fmt.Errorf("CONSUMER_BATCH_TIMEOUT_SEC must be positive, got %d", c.Consumer.BatchTimeoutSec)
	}
	if c.Consumer.RetryDelaySec < 0 {
		return fmt.Errorf("CONSUMER_RETRY_DELAY_SEC must not be negative, got %d", c.Consumer.RetryDelaySec)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultConnectionString is used when neither the configuration key nor
// CONNECTION_STRING is set.
const DefaultConnectionString = "Host=postgres;Database=financedb;Username=postgres;Password=postgres123"

// RetryDisabled turns off the schema retry job when used as SCHEMA_RETRY_SCHEDULE.
const RetryDisabled = "off"

type HttpConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	DefaultConnection string        `env:"ConnectionStrings__DefaultConnection"`
	ConnectionString  string        `env:"CONNECTION_STRING"`
	MaxOpenConns      int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime   time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"transaction.created"`
}

// Config holds application configuration
type Config struct {
	Http                HttpConfig
	Database            DatabaseConfig
	Kafka               KafkaConfig
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
	SchemaRetrySchedule string `env:"SCHEMA_RETRY_SCHEDULE" envDefault:"@every 30s"`
}

// NewConfig loads the optional dotenv file named by ENV_FILE (default .env)
// and then parses configuration from the process environment. Variables
// already present in the environment win over the file.
func NewConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	return Parse(env.ToMap(os.Environ()))
}

// Parse builds a Config from the given environment map.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Http.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if cfg.Kafka.Topic == "" && len(cfg.Kafka.Brokers) > 0 {
		return nil, fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// ConnString returns the raw connection string in precedence order: the
// configuration key, CONNECTION_STRING, then the compiled-in default.
func (c DatabaseConfig) ConnString() string {
	if c.DefaultConnection != "" {
		return c.DefaultConnection
	}
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return DefaultConnectionString
}

// DSN returns ConnString in a form lib/pq accepts.
func (c DatabaseConfig) DSN() string {
	return NormalizeDSN(c.ConnString())
}

// RetryEnabled reports whether failed schema initialization should be retried.
func (c *Config) RetryEnabled() bool {
	return c.SchemaRetrySchedule != "" && c.SchemaRetrySchedule != RetryDisabled
}

// EventsEnabled reports whether created transactions are published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

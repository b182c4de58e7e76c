package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/repository/postgres"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendPebble   = "pebble"
)

// Allocator backends.
const (
	AllocatorScan  = "scan"
	AllocatorRedis = "redis"
)

type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8081"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AuthSecret  string `env:"AUTH_SECRET" envDefault:""`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`
	PebbleDir    string `env:"PEBBLE_DIR" envDefault:"data/orders"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"orders"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	KafkaBrokers      string        `env:"KAFKA_BROKERS" envDefault:""`
	KafkaCommandTopic string        `env:"KAFKA_COMMAND_TOPIC" envDefault:"order-status-commands"`
	KafkaGroupID      string        `env:"KAFKA_GROUP_ID" envDefault:"blinds-tracker"`
	KafkaDLQTopic     string        `env:"KAFKA_DLQ_TOPIC" envDefault:"order-status-commands-dlq"`
	KafkaMaxRetries   int           `env:"KAFKA_MAX_RETRIES" envDefault:"5"`
	KafkaBaseBackoff  time.Duration `env:"KAFKA_BASE_BACKOFF" envDefault:"200ms"`
	KafkaChangesTopic string        `env:"KAFKA_CHANGES_TOPIC" envDefault:""`

	Allocator       string `env:"ALLOCATOR" envDefault:"scan"`
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisCounterKey string `env:"REDIS_COUNTER_KEY" envDefault:"blinds:order-number"`
	OrderPrefix     string `env:"ORDER_PREFIX" envDefault:"DDI"`
	OrderBaseline   int64  `env:"ORDER_BASELINE" envDefault:"672"`

	CommandFilePath string `env:"COMMAND_FILE_PATH" envDefault:"commands/advance.json"`
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logrus.WithField("file", envFile).Debug("no env file loaded")
		}
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StoreBackend {
	case BackendPostgres, BackendPebble:
	default:
		return fmt.Errorf("config: STORE_BACKEND must be %s or %s, got %q", BackendPostgres, BackendPebble, c.StoreBackend)
	}
	switch c.Allocator {
	case AllocatorScan, AllocatorRedis:
	default:
		return fmt.Errorf("config: ALLOCATOR must be %s or %s, got %q", AllocatorScan, AllocatorRedis, c.Allocator)
	}
	return nil
}

func (c Config) KafkaBrokersSlice() []string {
	return splitList(c.KafkaBrokers)
}

func (c Config) CORSOriginsSlice() []string {
	return splitList(c.CORSOrigins)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		URL:      c.DatabaseURL,
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		Username: c.PostgresUser,
		Password: c.PostgresPass,
		DbName:   c.PostgresDB,
		SslMode:  c.PostgresSSLMode,
	}
}

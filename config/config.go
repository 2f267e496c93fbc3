package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SHAREIT_DB_HOST or SHAREIT_REDIS_USERS_TTL.
const EnvPrefix = "SHAREIT"

type Config struct {
	HTTP     HTTPConfig     `yaml:"http" envconfig:"HTTP"`
	Database DatabaseConfig `yaml:"database" envconfig:"DB"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"REDIS"`
	Kafka    KafkaConfig    `yaml:"kafka" envconfig:"KAFKA"`
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
}

type HTTPConfig struct {
	Address         string        `yaml:"address" split_words:"true"`
	RateLimit       float64       `yaml:"rate_limit" split_words:"true"`
	RateBurst       int           `yaml:"rate_burst" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" split_words:"true"`
	Port     int    `yaml:"port" split_words:"true"`
	User     string `yaml:"user" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	Name     string `yaml:"name" split_words:"true"`
	SSLMode  string `yaml:"ssl_mode" split_words:"true"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig with an empty Addr disables the user cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr" split_words:"true"`
	Password string        `yaml:"password" split_words:"true"`
	DB       int           `yaml:"db" split_words:"true"`
	UsersTTL time.Duration `yaml:"users_ttl" split_words:"true"`
}

// KafkaConfig with no brokers disables event publishing.
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers" split_words:"true"`
	BookingTopic string   `yaml:"booking_topic" split_words:"true"`
	GroupID      string   `yaml:"group_id" split_words:"true"`
}

type LogConfig struct {
	Level       string `yaml:"level" split_words:"true"`
	Development bool   `yaml:"development" split_words:"true"`
}

// TracingConfig with an empty Endpoint keeps the no-op tracer.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" split_words:"true"`
	ServiceName string `yaml:"service_name" split_words:"true"`
	Insecure    bool   `yaml:"insecure" split_words:"true"`
}

// LoadConfig reads the YAML file at path, then applies SHAREIT_* environment
// overrides and defaults. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateBurst == 0 && c.HTTP.RateLimit > 0 {
		c.HTTP.RateBurst = int(c.HTTP.RateLimit)
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Redis.UsersTTL == 0 {
		c.Redis.UsersTTL = 5 * time.Minute
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "shareit.bookings"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "shareit-worker"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "shareit"
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.HTTP.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("http.rate_limit must not be negative, got %v", c.HTTP.RateLimit))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}

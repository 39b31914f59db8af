package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

// CatalogConfig holds the remote catalog API configuration
type CatalogConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// Client-side throttle: at most RequestsPerWindow lookups every RateWindow
	RequestsPerWindow int           `mapstructure:"requests_per_window"`
	RateWindow        time.Duration `mapstructure:"rate_window"`

	// Rate-limit backoff. MaxRetries 0 retries until success or cancellation.
	MaxRetries  uint64        `mapstructure:"max_retries"`
	BackoffMean time.Duration `mapstructure:"backoff_mean"`

	Proxies []string `mapstructure:"proxies"`

	// Credentials
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	AssociateTag string `mapstructure:"associate_tag"`
}

// WorkerConfig holds pipeline settings
type WorkerConfig struct {
	Count            int      `mapstructure:"count"`
	MaxItemRetries   int      `mapstructure:"max_item_retries"`
	MaxFamilyRetries int      `mapstructure:"max_family_retries"`
	Seeds            []string `mapstructure:"seeds"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	Password      string        `mapstructure:"password"`
	Database      int           `mapstructure:"database"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	MinIdleTime   time.Duration `mapstructure:"min_idle_time"`
}

// MetricsConfig controls the Prometheus endpoint. Port 0 disables it.
type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config.yaml from dir, with .env and environment variable overrides.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.yaml file not found in %s", dir)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Catalog.RequestsPerWindow <= 0 {
		return fmt.Errorf("catalog.requests_per_window must be positive (got %d)", c.Catalog.RequestsPerWindow)
	}
	if c.Catalog.BackoffMean <= 0 {
		return fmt.Errorf("catalog.backoff_mean must be positive (got %v)", c.Catalog.BackoffMean)
	}
	if c.Worker.Count <= 0 {
		return fmt.Errorf("worker.count must be positive (got %d)", c.Worker.Count)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.endpoint", "https://webservices.amazon.com/onca/xml")
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("catalog.requests_per_window", 9)
	v.SetDefault("catalog.rate_window", 10*time.Second)
	v.SetDefault("catalog.max_retries", 0)
	v.SetDefault("catalog.backoff_mean", 10*time.Second)
	v.SetDefault("catalog.access_key", "")
	v.SetDefault("catalog.secret_key", "")
	v.SetDefault("catalog.associate_tag", "")

	v.SetDefault("worker.count", 4)
	v.SetDefault("worker.max_item_retries", 5)
	v.SetDefault("worker.max_family_retries", 3)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "catalog")
	v.SetDefault("database.user", "catalog_user")
	v.SetDefault("database.password", "catalog_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "catalog_consumer")
	v.SetDefault("redis.min_idle_time", 2*time.Minute)

	v.SetDefault("metrics.host", "0.0.0.0")
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

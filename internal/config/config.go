package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the BugStore services
type Config struct {
	Env      string
	Log      LogConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Events   EventsConfig
	Cache    CacheConfig
	Worker   WorkerConfig
	Metrics  MetricsConfig
}

// LogConfig selects the minimum log level. Empty means the environment default.
type LogConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsDir   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string
}

// EventsConfig tunes the order event stream and its redelivery
type EventsConfig struct {
	StreamMaxAge      time.Duration
	MaxDeliver        int
	AckWait           time.Duration
	RedeliveryBackoff time.Duration
}

// CacheConfig holds report cache TTLs
type CacheConfig struct {
	CustomerRevenueTTL time.Duration
}

// WorkerConfig tunes the report worker
type WorkerConfig struct {
	DebounceWindow time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MetricsPort    string
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Namespace string
}

var defaults = map[string]interface{}{
	"ENV":                     "development",
	"LOG_LEVEL":               "",
	"SERVER_PORT":             "8080",
	"SERVER_READ_TIMEOUT":     "10s",
	"SERVER_WRITE_TIMEOUT":    "10s",
	"SERVER_SHUTDOWN_TIMEOUT": "30s",
	"CORS_ALLOWED_ORIGINS":    "http://localhost:3000,http://localhost:8080",

	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "postgres",
	"DB_NAME":              "bugstore",
	"DB_SSLMODE":           "disable",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": "5m",
	"DB_MIGRATIONS_DIR":    "migrations",

	"REDIS_HOST":     "localhost",
	"REDIS_PORT":     "6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"NATS_URL": "nats://localhost:4222",

	"EVENTS_STREAM_MAX_AGE":     "24h",
	"EVENTS_MAX_DELIVER":        3,
	"EVENTS_ACK_WAIT":           "30s",
	"EVENTS_REDELIVERY_BACKOFF": "1s",

	"CACHE_TTL_CUSTOMER_REVENUE": "300s",

	"WORKER_DEBOUNCE_WINDOW": "1s",
	"WORKER_MAX_RETRIES":     3,
	"WORKER_INITIAL_BACKOFF": "100ms",
	"WORKER_METRICS_PORT":    "9091",
	"METRICS_NAMESPACE":      "bugstore",
}

// Load reads configuration from environment variables and returns a Config struct
func Load() (*Config, error) {
	viper.AutomaticEnv()
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	cfg := &Config{
		Env: viper.GetString("ENV"),
		Log: LogConfig{
			Level: strings.ToLower(viper.GetString("LOG_LEVEL")),
		},
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			SSLMode:       viper.GetString("DB_SSLMODE"),
			MaxOpenConns:  viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:  viper.GetInt("DB_MAX_IDLE_CONNS"),
			MigrationsDir: viper.GetString("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		NATS: NATSConfig{
			URL: viper.GetString("NATS_URL"),
		},
		Events: EventsConfig{
			MaxDeliver: viper.GetInt("EVENTS_MAX_DELIVER"),
		},
		Worker: WorkerConfig{
			MaxRetries:  viper.GetInt("WORKER_MAX_RETRIES"),
			MetricsPort: viper.GetString("WORKER_METRICS_PORT"),
		},
		Metrics: MetricsConfig{
			Namespace: viper.GetString("METRICS_NAMESPACE"),
		},
	}

	durations := map[string]*time.Duration{
		"SERVER_READ_TIMEOUT":        &cfg.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       &cfg.Server.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT":    &cfg.Server.ShutdownTimeout,
		"DB_CONN_MAX_LIFETIME":       &cfg.Database.ConnMaxLifetime,
		"CACHE_TTL_CUSTOMER_REVENUE": &cfg.Cache.CustomerRevenueTTL,
		"WORKER_DEBOUNCE_WINDOW":     &cfg.Worker.DebounceWindow,
		"WORKER_INITIAL_BACKOFF":     &cfg.Worker.InitialBackoff,
		"EVENTS_STREAM_MAX_AGE":      &cfg.Events.StreamMaxAge,
		"EVENTS_ACK_WAIT":            &cfg.Events.AckWait,
		"EVENTS_REDELIVERY_BACKOFF":  &cfg.Events.RedeliveryBackoff,
	}

	for key, dest := range durations {
		d, err := time.ParseDuration(viper.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		*dest = d
	}

	if cfg.Events.MaxDeliver < 1 {
		return nil, fmt.Errorf("invalid EVENTS_MAX_DELIVER: %d", cfg.Events.MaxDeliver)
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q", cfg.Log.Level)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	items := strings.Split(raw, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

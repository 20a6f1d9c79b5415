package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv             = "dev"
	defaultDatabaseURL        = "automarket.db"
	defaultMaxOpenConns       = 10
	defaultMaxIdleConns       = 5
	defaultConnMaxLifetime    = "30m"
	defaultSlowQueryThreshold = "200ms"
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
	defaultMetricsNamespace   = "automarket"
)

type Config struct {
	AppEnv                string
	Database              DatabaseConfig
	Log                   LogConfig
	MediaBatchConcurrency int
	MetricsNamespace      string
}

type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	SlowQueryThreshold time.Duration
}

// IsPostgres reports whether URL points at a PostgreSQL server rather than a SQLite file.
func (c DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, optionally seeded from a local .env file.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app_env", defaultAppEnv)
	v.SetDefault("database_url", defaultDatabaseURL)
	v.SetDefault("db_max_open_conns", defaultMaxOpenConns)
	v.SetDefault("db_max_idle_conns", defaultMaxIdleConns)
	v.SetDefault("db_conn_max_lifetime", defaultConnMaxLifetime)
	v.SetDefault("db_slow_query_threshold", defaultSlowQueryThreshold)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_format", defaultLogFormat)
	v.SetDefault("media_batch_concurrency", 0)
	v.SetDefault("metrics_namespace", defaultMetricsNamespace)

	cfg := &Config{
		AppEnv: strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		Database: DatabaseConfig{
			URL:          strings.TrimSpace(v.GetString("database_url")),
			MaxOpenConns: v.GetInt("db_max_open_conns"),
			MaxIdleConns: v.GetInt("db_max_idle_conns"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		},
		MediaBatchConcurrency: v.GetInt("media_batch_concurrency"),
		MetricsNamespace:      strings.TrimSpace(v.GetString("metrics_namespace")),
	}

	var err error
	cfg.Database.ConnMaxLifetime, err = parseDuration(v, "db_conn_max_lifetime")
	if err != nil {
		return nil, err
	}
	cfg.Database.SlowQueryThreshold, err = parseDuration(v, "db_slow_query_threshold")
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.Database.ConnMaxLifetime < 0 {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME must be >= 0")
	}
	if cfg.MediaBatchConcurrency < 0 {
		return fmt.Errorf("MEDIA_BATCH_CONCURRENCY must be >= 0")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	if cfg.MetricsNamespace == "" {
		return fmt.Errorf("METRICS_NAMESPACE must not be empty")
	}

	if isProdLike(cfg.AppEnv) && !cfg.Database.IsPostgres() {
		return fmt.Errorf("in prod/release DATABASE_URL must point at PostgreSQL")
	}

	return nil
}

// IsProduction reports whether the configured environment is a production one.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", strings.ToUpper(key), value, err)
	}
	return d, nil
}

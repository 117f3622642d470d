package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	EnvRedisPassword   = "GYMLOG_REDIS_PASS"
	EnvDBPassword      = "GYMLOG_DB_PASS"
	EnvSentryDSN       = "SENTRY_DSN"
	EnvHoneycombAPIKey = "HONEYCOMB_API_KEY"
	EnvHoneycombOn     = "HONEYCOMB_ENABLED"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`
	// prometheus /metrics listener
	MetricsHost string `toml:"metrics_host"`
	MetricsPort string `toml:"metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// rotation of the log file, 0 keeps rotated files forever
	LogMaxSizeMB  int  `toml:"log_max_size_mb"`
	LogMaxBackups int  `toml:"log_max_backups"`
	LogMaxAgeDays int  `toml:"log_max_age_days"`
	SentryEnabled bool `toml:"sentry_enabled"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	RunMigrations    bool   `toml:"run_migrations"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// sessions and drafts
	SessionTTLHours              int `toml:"session_ttl_hours"`
	SessionsCleanupIntervalHours int `toml:"sessions_cleanup_interval_hours"`
	DraftTTLHours                int `toml:"draft_ttl_hours"`
	LoginRateLimitAllowedPerMin  int `toml:"login_rate_limit_allowed_per_min"`
	SubmitRateLimitAllowedPerMin int `toml:"submit_rate_limit_allowed_per_min"`

	// exercise catalog, read from CatalogURL when set, else from CatalogPath
	CatalogPath        string `toml:"catalog_path"`
	CatalogURL         string `toml:"catalog_url"`
	CatalogCacheSizeMB int    `toml:"catalog_cache_size_mb"`

	// secrets, from the environment only
	RedisPassword    string `toml:"-"`
	PostgresPassword string `toml:"-"`
	SentryDSN        string `toml:"-"`
	HoneycombEnabled bool   `toml:"-"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the env section of the TOML file at path, fills unset values
// with defaults and takes secrets from the environment. A .env file next to
// the binary, if present, is loaded into the environment first.
func Load(env, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("load .env file: %s", err)
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no [%s] section in %s", env, path)
	}

	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()
	cfg.RedisPassword = os.Getenv(EnvRedisPassword)
	cfg.PostgresPassword = os.Getenv(EnvDBPassword)
	cfg.SentryDSN = os.Getenv(EnvSentryDSN)
	cfg.HoneycombEnabled = os.Getenv(EnvHoneycombOn) == "true"

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsHost == "" {
		c.MetricsHost = "localhost"
	}
	if c.MetricsPort == "" {
		c.MetricsPort = "2112"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 50
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "gymlog"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = 24 * 7
	}
	if c.SessionsCleanupIntervalHours <= 0 {
		c.SessionsCleanupIntervalHours = 8
	}
	if c.DraftTTLHours <= 0 {
		c.DraftTTLHours = 24
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.SubmitRateLimitAllowedPerMin <= 0 {
		c.SubmitRateLimitAllowedPerMin = 30
	}
	if c.CatalogPath == "" && c.CatalogURL == "" {
		c.CatalogPath = "./assets/exercises.json"
	}
	if c.CatalogCacheSizeMB <= 0 {
		c.CatalogCacheSizeMB = 8
	}
}

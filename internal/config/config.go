package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultAPIToken is the local dev credential for the enrichment feed.
	DefaultAPIToken = "driva_test_key_abc123xyz789"

	internalDBHost = "postgres"
	externalDBHost = "localhost"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`

	APIToken string `yaml:"api_token"`

	Database  DatabaseConfig  `yaml:"database"`
	Feed      FeedConfig      `yaml:"feed"`
	Redis     RedisConfig     `yaml:"redis"`
	Analytics AnalyticsConfig `yaml:"analytics"`

	// APIURL is where the dashboard client reaches this service.
	APIURL string `yaml:"api_url"`
}

// DatabaseConfig locates the gold table.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`

	SQLitePath string `yaml:"sqlite_path"`
}

// FeedConfig tunes the simulated enrichment feed.
type FeedConfig struct {
	TotalItems          int     `yaml:"total_items"`
	UpdateProbability   float64 `yaml:"update_probability"`
	ThrottleProbability float64 `yaml:"throttle_probability"`
	RateLimitRPS        float64 `yaml:"rate_limit_rps"`
	RateLimitBurst      int     `yaml:"rate_limit_burst"`
	Seed                uint64  `yaml:"seed"`
}

// RedisConfig enables the analytics snapshot cache when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AnalyticsConfig struct {
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	ListLimit int           `yaml:"list_limit"`
}

func defaults() Config {
	return Config{
		Env:      "development",
		Port:     3000,
		APIToken: DefaultAPIToken,
		Database: DatabaseConfig{
			Driver:     DriverPostgres,
			Port:       5432,
			User:       "driva_user",
			Password:   "driva_password",
			Name:       "driva_db",
			SQLitePath: "driva.db",
		},
		Feed: FeedConfig{
			TotalItems:          5000,
			UpdateProbability:   0.20,
			ThrottleProbability: 0.10,
			RateLimitBurst:      1,
		},
		Analytics: AnalyticsConfig{
			CacheTTL:  10 * time.Second,
			ListLimit: 100,
		},
		APIURL: "http://localhost:3000",
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables. Later layers win.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse CONFIG_FILE: %w", err)
		}
	}

	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.Port = getEnvAsInt("PORT", cfg.Port)
	cfg.APIToken = getEnv("API_TOKEN", cfg.APIToken)
	cfg.APIURL = getEnv("API_URL", cfg.APIURL)

	db := &cfg.Database
	db.Driver = strings.ToLower(getEnv("DB_DRIVER", db.Driver))
	db.URL = getEnv("DB_URL", db.URL)
	db.Host = getEnv("DB_HOST", db.Host)
	db.Port = getEnvAsInt("DB_PORT", db.Port)
	db.User = getEnv("DB_USER", db.User)
	db.Password = getEnv("DB_PASSWORD", db.Password)
	db.Name = getEnv("DB_NAME", db.Name)
	db.SQLitePath = getEnv("SQLITE_PATH", db.SQLitePath)

	feed := &cfg.Feed
	feed.TotalItems = getEnvAsInt("FEED_TOTAL_ITEMS", feed.TotalItems)
	feed.UpdateProbability = getEnvAsFloat("FEED_UPDATE_PROBABILITY", feed.UpdateProbability)
	feed.ThrottleProbability = getEnvAsFloat("FEED_THROTTLE_PROBABILITY", feed.ThrottleProbability)
	feed.RateLimitRPS = getEnvAsFloat("FEED_RATE_LIMIT_RPS", feed.RateLimitRPS)
	feed.RateLimitBurst = getEnvAsInt("FEED_RATE_LIMIT_BURST", feed.RateLimitBurst)
	feed.Seed = uint64(getEnvAsInt("FEED_SEED", int(feed.Seed)))

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Analytics.CacheTTL = getEnvAsDuration("ANALYTICS_CACHE_TTL", cfg.Analytics.CacheTTL)
	cfg.Analytics.ListLimit = getEnvAsInt("ANALYTICS_LIST_LIMIT", cfg.Analytics.ListLimit)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.APIToken) == "" {
		errs = append(errs, errors.New("API_TOKEN required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, errors.New("PORT must be between 1 and 65535"))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf(`DB_DRIVER must be "%s" or "%s"`, DriverPostgres, DriverSQLite))
	}
	if c.Feed.TotalItems <= 0 {
		errs = append(errs, errors.New("FEED_TOTAL_ITEMS must be > 0"))
	}
	if c.Feed.UpdateProbability < 0 || c.Feed.UpdateProbability > 1 {
		errs = append(errs, errors.New("FEED_UPDATE_PROBABILITY must be within [0,1]"))
	}
	if c.Feed.ThrottleProbability < 0 || c.Feed.ThrottleProbability > 1 {
		errs = append(errs, errors.New("FEED_THROTTLE_PROBABILITY must be within [0,1]"))
	}
	if c.Feed.RateLimitRPS < 0 {
		errs = append(errs, errors.New("FEED_RATE_LIMIT_RPS must be >= 0"))
	}
	if c.Analytics.ListLimit <= 0 || c.Analytics.ListLimit > analytics.MaxListLimit {
		errs = append(errs, fmt.Errorf("ANALYTICS_LIST_LIMIT must be between 1 and %d", analytics.MaxListLimit))
	}
	return errors.Join(errs...)
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// PostgresURLs lists the DSNs to try in order. An explicit DB_URL or DB_HOST
// is used alone; otherwise the in-network host is tried before localhost.
func (d DatabaseConfig) PostgresURLs() []string {
	if d.URL != "" {
		return []string{d.URL}
	}
	hosts := []string{internalDBHost, externalDBHost}
	if d.Host != "" {
		hosts = []string{d.Host}
	}
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   fmt.Sprintf("%s:%d", h, d.Port),
			Path:   "/" + d.Name,
		}
		out = append(out, u.String())
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

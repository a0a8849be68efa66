// Package config はサービス全体の設定を読み込みます。
// YAMLファイル（任意）を読み込んだ後、環境変数で上書きします。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"angellist_widget/internal/feature/company/domain/entity"
	"angellist_widget/internal/platform/externalapi/angellist"
)

// EnvConfigPath はYAML設定ファイルのパスを指定する環境変数です。
const EnvConfigPath = "CONFIG_PATH"

// Configuration validation errors.
var (
	ErrInvalidPort            = errors.New("server.port must be between 1 and 65535")
	ErrInvalidTimeout         = errors.New("angellist.timeout must be positive")
	ErrInvalidRateLimit       = errors.New("angellist.rate_limit must be non-negative")
	ErrInvalidRateInterval    = errors.New("angellist.rate_interval must be positive")
	ErrInvalidBrowsingContext = errors.New("widget.browsing_context must be one of: \"\", _blank, _self, _parent, _top")
	ErrInvalidDatabaseDriver  = errors.New("database.driver must be 'postgres' or 'sqlite'")
	ErrInvalidTokenTTL        = errors.New("auth.token_ttl must be positive")
	ErrInvalidLogLevel        = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat       = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	AngelList AngelListConfig `yaml:"angellist"`
	Widget    WidgetConfig    `yaml:"widget"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AngelListConfig contains upstream API settings.
type AngelListConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	RateLimit    int           `yaml:"rate_limit"`
	RateInterval time.Duration `yaml:"rate_interval"`
}

// WidgetConfig contains rendering defaults. Pointers distinguish "unset" from an explicit empty context.
type WidgetConfig struct {
	SchemaOrg       *bool   `yaml:"schema_org"`
	BrowsingContext *string `yaml:"browsing_context"`
}

// RedisConfig contains markup cache settings. An empty Host selects the in-memory cache.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DatabaseConfig contains post metadata storage settings.
type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// AuthConfig contains editor token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: 10 * time.Second},
		AngelList: AngelListConfig{
			BaseURL:      angellist.DefaultBaseURL,
			Timeout:      angellist.DefaultTimeout,
			RateLimit:    angellist.DefaultRateLimit,
			RateInterval: angellist.DefaultRateInterval,
		},
		Redis:    RedisConfig{Port: "6379"},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "angellist_widget.db"},
		Auth:     AuthConfig{TokenTTL: 24 * time.Hour},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment overrides, and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}

	if c.AngelList.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.AngelList.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.AngelList.RateInterval <= 0 {
		return ErrInvalidRateInterval
	}

	if c.Widget.BrowsingContext != nil && !entity.ValidBrowsingContext(*c.Widget.BrowsingContext) {
		return ErrInvalidBrowsingContext
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return ErrInvalidDatabaseDriver
	}

	if c.Auth.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

// RenderDefaults は設定から描画設定の既定値を組み立てます。Secureはリクエストごとに決まります。
func (w WidgetConfig) RenderDefaults() entity.RenderConfig {
	schemaOrg := true
	if w.SchemaOrg != nil {
		schemaOrg = *w.SchemaOrg
	}
	bc := entity.BrowsingContextBlank
	if w.BrowsingContext != nil {
		bc = *w.BrowsingContext
	}
	return entity.NewRenderConfig(schemaOrg, bc, false)
}

// ClientConfig はAngelListクライアント用の設定に変換します。
func (a AngelListConfig) ClientConfig() angellist.Config {
	return angellist.Config{
		BaseURL:      a.BaseURL,
		Timeout:      a.Timeout,
		RateLimit:    a.RateLimit,
		RateInterval: a.RateInterval,
	}
}

// applyEnv overrides fields whose environment variable is set.
func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	num("PORT", &c.Server.Port)
	dur("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)

	str("ANGELLIST_BASE_URL", &c.AngelList.BaseURL)
	dur("ANGELLIST_TIMEOUT", &c.AngelList.Timeout)
	num("ANGELLIST_RATE_LIMIT", &c.AngelList.RateLimit)
	dur("ANGELLIST_RATE_INTERVAL", &c.AngelList.RateInterval)

	if v, ok := os.LookupEnv("WIDGET_SCHEMA_ORG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("WIDGET_SCHEMA_ORG: %w", err))
		} else {
			c.Widget.SchemaOrg = &b
		}
	}
	if v, ok := os.LookupEnv("WIDGET_BROWSING_CONTEXT"); ok {
		c.Widget.BrowsingContext = &v
	}

	str("REDIS_HOST", &c.Redis.Host)
	str("REDIS_PORT", &c.Redis.Port)
	str("REDIS_PASSWORD", &c.Redis.Password)
	num("REDIS_DB", &c.Redis.DB)

	str("DB_DRIVER", &c.Database.Driver)
	str("DB_DSN", &c.Database.DSN)
	str("DB_HOST", &c.Database.Host)
	str("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	boolean("RUN_MIGRATIONS", &c.Database.RunMigrations)

	str("JWT_SECRET", &c.Auth.JWTSecret)
	dur("TOKEN_TTL", &c.Auth.TokenTTL)

	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment override: %w", errors.Join(errs...))
	}
	return nil
}

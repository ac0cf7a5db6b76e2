package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	Redis        RedisConfig
	Admin        AdminConfig
	Notifier     NotifierConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HB_APP_ENV" default:"dev"`
	Port         string `envconfig:"HB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"HB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the backing store for the whole-value JSON records
// (catalog snapshot, order ledger).
type StorageConfig struct {
	Driver string `envconfig:"HB_STORAGE_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"HB_STORAGE_DSN" default:"healthybreads.db"`

	MaxOpenConns    int           `envconfig:"HB_STORAGE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"HB_STORAGE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"HB_STORAGE_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HB_STORAGE_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverSQLite, StorageDriverPostgres, StorageDriverRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	if s.DSN == "" {
		return fmt.Errorf("%s_STORAGE_DSN is required", EnvPrefix)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"HB_REDIS_URL"`
	Address      string        `envconfig:"HB_REDIS_ADDR"`
	Password     string        `envconfig:"HB_REDIS_PASSWORD"`
	DB           int           `envconfig:"HB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminConfig gates the admin surface. The token is a shared, client-readable
// flag, not a security boundary.
type AdminConfig struct {
	Password string `envconfig:"HB_ADMIN_PASSWORD" default:"healthybreads"`
	Token    string `envconfig:"HB_ADMIN_TOKEN" default:"admin-authenticated"`
}

// NotifierConfig configures the order notification email. An empty APIKey
// disables delivery (the noop notifier is used instead).
type NotifierConfig struct {
	APIKey  string        `envconfig:"HB_NOTIFIER_API_KEY"`
	BaseURL string        `envconfig:"HB_NOTIFIER_BASE_URL" default:"https://api.resend.com"`
	From    string        `envconfig:"HB_NOTIFIER_FROM" default:"Healthy Breads <onboarding@resend.dev>"`
	To      string        `envconfig:"HB_NOTIFIER_TO" default:"j.lizarraga23@gmail.com"`
	Timeout time.Duration `envconfig:"HB_NOTIFIER_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HB_AUTO_MIGRATE" default:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"HB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ストレージの種類
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`   // サーバーポート
	AppEnv   string `envconfig:"APP_ENV" default:"dev"` // dev/prod
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"` // memory/redis/postgres

	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisChannel string `envconfig:"REDIS_CHANNEL" default:"scm:storage"`

	DatabaseURL      string `envconfig:"DATABASE_URL"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"scm"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET"` // JWT署名シークレット

	ExportDelimiter string `envconfig:"EXPORT_DELIMITER" default:","`
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

//必須チェック
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StorageDriver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, redis, postgres: %q", c.StorageDriver)
	}
	if c.StorageDriver == StorageRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if len([]rune(c.ExportDelimiter)) != 1 {
		return fmt.Errorf("EXPORT_DELIMITER must be a single character")
	}
	return nil
}

// Addr は ":" 付きの待ち受けアドレス。
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// Delimiter はCSV区切り文字。
func (c Config) Delimiter() rune {
	for _, r := range c.ExportDelimiter {
		return r
	}
	return ','
}

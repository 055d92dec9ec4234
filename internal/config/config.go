package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" env-default:":8000"`
	GinMode         string        `env:"GIN_MODE" env-default:"debug"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"15s"`

	Database DatabaseConfig
	Storage  StorageConfig
	Logger   LoggerConfig

	MaxUploadBytes   int64    `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL" env-default:"sqlite://tasks.db"`
	LogLevel        string        `env:"DB_LOG_LEVEL" env-default:"warn"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_LIFETIME" env-default:"1h"`
	SeedSampleData  bool          `env:"SEED_SAMPLE_DATA" env-default:"true"`
}

type StorageConfig struct {
	Backend   string `env:"STORAGE_BACKEND" env-default:"local"`
	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Bucket    string `env:"S3_BUCKET"`
}

type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" env-default:"info"`
	Encoding string `env:"LOG_ENCODING" env-default:"json"`
}

// Load reads configuration from the environment, optionally seeded from a .env file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}

	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR must not be empty for the local storage backend")
		}
	case StorageMinio:
		if c.Storage.Endpoint == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" || c.Storage.Bucket == "" {
			return fmt.Errorf("minio storage requires S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	AppEnv            string  `env:"APP_ENV" envDefault:"production"`
	Port              int     `env:"PORT" envDefault:"8080"`
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"INFO"`
	RateLimit         float64 `env:"RATE_LIMIT" envDefault:"20"`
	WorkerConcurrency int     `env:"WORKER_CONCURRENCY" envDefault:"10"`
	AssetProvider     string  `env:"ASSET_PROVIDER" envDefault:"cloudinary"`

	FirebaseKeyPath string `env:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`

	DB         DBConfig         `envPrefix:"DB_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	Cloudinary CloudinaryConfig `envPrefix:"CLOUDINARY_"`
	MinIO      MinIOConfig      `envPrefix:"MINIO_"`
	S3         S3Config         `envPrefix:"S3_"`
	Otel       OtelConfig       `envPrefix:"OTEL_"`
}

type DBConfig struct {
	Database           string `env:"DATABASE"`
	User               string `env:"USER"`
	Password           string `env:"PASSWORD"`
	Host               string `env:"HOST" envDefault:"localhost"`
	Port               string `env:"PORT" envDefault:"5432"`
	MaxOpenConnections int    `env:"MAX_OPEN_CONNECTIONS" envDefault:"20"`
	// SlowQuery is the latency above which a statement is logged as slow.
	SlowQuery time.Duration `env:"SLOW_QUERY" envDefault:"200ms"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig is optional: an empty Host disables the list cache and the
// asset deletion retry queue.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
}

func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return c.Host + ":" + c.Port
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
	Folder    string `env:"FOLDER" envDefault:"storeease"`
}

type MinIOConfig struct {
	Endpoint   string `env:"ENDPOINT"`
	AccessKey  string `env:"ACCESS_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	Bucket     string `env:"BUCKET"`
	PublicPath string `env:"PUBLIC_PATH" envDefault:"public"`
}

type S3Config struct {
	Bucket     string `env:"BUCKET"`
	Region     string `env:"REGION" envDefault:"ap-southeast-1"`
	PublicPath string `env:"PUBLIC_PATH" envDefault:"public"`
}

type OtelConfig struct {
	Endpoint    string `env:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"storeease"`
}

func (c Config) IsLocal() bool {
	return c.AppEnv == APP_ENV_LOCAL
}

// Load reads the configuration from the environment (and .env when present).
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings required by the selected providers. It
// covers what both binaries need; see ValidateAPI for the HTTP server.
func (c Config) Validate() error {
	var errs []error
	switch c.AssetProvider {
	case ASSET_PROVIDER_CLOUDINARY:
		if c.Cloudinary.CloudName == "" {
			errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME is required"))
		}
		if c.Cloudinary.APIKey == "" {
			errs = append(errs, errors.New("CLOUDINARY_API_KEY is required"))
		}
		if c.Cloudinary.APISecret == "" {
			errs = append(errs, errors.New("CLOUDINARY_API_SECRET is required"))
		}
	case ASSET_PROVIDER_MINIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required"))
		}
	case ASSET_PROVIDER_S3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ASSET_PROVIDER %q", c.AssetProvider))
	}
	return errors.Join(errs...)
}

// ValidateAPI checks the settings only the HTTP server uses. Outside local
// the server verifies bearer tokens, so it needs the identity provider.
func (c Config) ValidateAPI() error {
	if !c.IsLocal() && c.FirebaseKeyPath == "" {
		return errors.New("FIREBASE_SERVICE_ACCOUNT_KEY_PATH is required outside local")
	}
	return nil
}

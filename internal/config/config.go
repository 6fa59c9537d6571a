package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogFile   string `envconfig:"LOG_FILE" default:""`
	Version   string `envconfig:"VERSION" default:"dev"`

	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"postgres"`
	DatabaseURL    string `envconfig:"DATABASE_URL" default:""`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"catalog.db"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"local"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"uploads"`
	S3Bucket      string `envconfig:"S3_BUCKET" default:""`
	S3Region      string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint    string `envconfig:"S3_ENDPOINT" default:""`
	S3AccessKey   string `envconfig:"S3_ACCESS_KEY" default:""`
	S3SecretKey   string `envconfig:"S3_SECRET_KEY" default:""`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	PlantPageSize  int `envconfig:"PLANT_PAGE_SIZE" default:"20"`
	FlowerPageSize int `envconfig:"FLOWER_PAGE_SIZE" default:"50"`
	ZodiacPageSize int `envconfig:"ZODIAC_PAGE_SIZE" default:"20"`

	AdminAPIKeyHash string `envconfig:"ADMIN_API_KEY_HASH" default:""`
}

// Load reads an optional .env file and then configuration from environment
// variables into a Config struct. Variables already set in the environment
// take precedence over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations the struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.StorageDriver {
	case StorageLocal:
		if c.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR is required for the local storage driver"))
		}
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	pageSizes := []struct {
		name string
		size int
	}{
		{"PLANT_PAGE_SIZE", c.PlantPageSize},
		{"FLOWER_PAGE_SIZE", c.FlowerPageSize},
		{"ZODIAC_PAGE_SIZE", c.ZodiacPageSize},
	}
	for _, p := range pageSizes {
		if p.size <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", p.name))
		}
	}

	return errors.Join(errs...)
}

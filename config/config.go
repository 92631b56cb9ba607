// Package config loads service and CLI settings.
//
// Precedence (highest first): environment variables, config file, defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"relviz-backend/storage"
	"relviz-backend/workbook"

	"github.com/spf13/viper"
)

// Config holds all runtime settings
type Config struct {
	Server   ServerConfig          `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig        `mapstructure:"database" yaml:"database"`
	Storage  storage.StorageConfig `mapstructure:"storage" yaml:"storage"`
	Export   ExportConfig          `mapstructure:"export" yaml:"export"`
}

// ServerConfig controls the HTTP server
type ServerConfig struct {
	Port          string `mapstructure:"port" yaml:"port"`
	MaxInputBytes int64  `mapstructure:"max_input_bytes" yaml:"max_input_bytes"`
}

// DatabaseConfig controls the export metadata store.
// An empty URL keeps export records in memory.
type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"-"`
}

// ExportConfig controls workbook generation and archiving
type ExportConfig struct {
	FilenamePrefix string        `mapstructure:"filename_prefix" yaml:"filename_prefix"`
	Retention      time.Duration `mapstructure:"retention" yaml:"retention"`
}

// env maps config keys onto the environment variable names used by deployments
var env = map[string]string{
	"server.port":            "PORT",
	"server.max_input_bytes": "MAX_INPUT_BYTES",
	"database.url":           "DATABASE_URL",
	"storage.type":           "STORAGE_TYPE",
	"storage.local_path":     "STORAGE_LOCAL_PATH",
	"storage.s3_bucket":      "AWS_S3_BUCKET",
	"storage.s3_region":      "AWS_REGION",
	"storage.s3_prefix":      "AWS_S3_PREFIX",
	"storage.aws_access_key": "AWS_ACCESS_KEY_ID",
	"storage.aws_secret_key": "AWS_SECRET_ACCESS_KEY",
	"export.filename_prefix": "EXPORT_FILENAME_PREFIX",
	"export.retention":       "EXPORT_RETENTION",
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			MaxInputBytes: 10 * 1024 * 1024, // 10MB
		},
		Storage: storage.StorageConfig{
			Type:      storage.StorageTypeLocal,
			LocalPath: "./storage/exports",
			S3Region:  "us-east-1",
		},
		Export: ExportConfig{
			FilenamePrefix: workbook.DefaultPrefix,
			Retention:      24 * time.Hour,
		},
	}
}

// SetDefaults registers defaults and environment bindings on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_input_bytes", d.Server.MaxInputBytes)
	v.SetDefault("database.url", "")
	v.SetDefault("storage.type", string(d.Storage.Type))
	v.SetDefault("storage.local_path", d.Storage.LocalPath)
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_region", d.Storage.S3Region)
	v.SetDefault("storage.s3_prefix", "")
	v.SetDefault("storage.aws_access_key", "")
	v.SetDefault("storage.aws_secret_key", "")
	v.SetDefault("export.filename_prefix", d.Export.FilenamePrefix)
	v.SetDefault("export.retention", d.Export.Retention)

	for key, name := range env {
		_ = v.BindEnv(key, name)
	}
}

// Load reads configuration from an optional YAML file and the environment
func Load(configFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates the settings held by v
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail at first use
func (c *Config) Validate() error {
	if c.Server.MaxInputBytes <= 0 {
		return errors.New("MAX_INPUT_BYTES must be positive")
	}
	switch c.Storage.Type {
	case storage.StorageTypeLocal:
	case storage.StorageTypeS3:
		if c.Storage.S3Bucket == "" {
			return errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
	return nil
}

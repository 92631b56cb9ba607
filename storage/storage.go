package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored workbook does not exist
var ErrNotFound = errors.New("object not found")

// Storage interface for export blob storage
type Storage interface {
	// Upload stores an export and returns the storage path
	Upload(ctx context.Context, exportID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves an export by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes an export by storage path
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType `mapstructure:"type" yaml:"type"`
	LocalPath    string      `mapstructure:"local_path" yaml:"local_path"` // For local storage
	S3Bucket     string      `mapstructure:"s3_bucket" yaml:"s3_bucket"`   // For S3 storage
	S3Region     string      `mapstructure:"s3_region" yaml:"s3_region"`   // For S3 storage
	S3Prefix     string      `mapstructure:"s3_prefix" yaml:"s3_prefix"`
	AWSAccessKey string      `mapstructure:"aws_access_key" yaml:"-"`
	AWSSecretKey string      `mapstructure:"aws_secret_key" yaml:"-"`
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		localPath := cfg.LocalPath
		if localPath == "" {
			localPath = "./storage/exports"
		}
		return NewLocalStorage(localPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET is required for S3 storage")
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// generateStoragePath builds a date-partitioned path unique per export:
// 2026/10/19/<uuid>.xlsx
func generateStoragePath(exportID uuid.UUID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".xlsx"
	}
	return fmt.Sprintf("%s/%s%s", now.UTC().Format("2006/01/02"), exportID.String(), ext)
}

// getContentType determines content type from filename
func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return "application/vnd.ms-excel"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

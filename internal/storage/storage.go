// Package storage keeps provider verification documents.
package storage

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/marketplace-api/internal/config"
)

type Store interface {
	// Put stores body under key and returns the URL it can be fetched from.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("storage: S3_BUCKET is required for the s3 backend")
		}
		return NewS3Store(cfg), nil
	case config.StorageLocal, "":
		return NewLocalStore(cfg.LocalStoragePath, "/uploads"), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}

package storage

import (
	"context"
	"fmt"

	"github.com/sambbaron/tuneful/config"
)

// New returns the blob store selected by cfg.Upload.Backend.
func New(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.Upload.Backend {
	case "local":
		return NewLocalStore(cfg.Upload.Dir)
	case "minio":
		return NewMinioStore(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", cfg.Upload.Backend)
	}
}

package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"skillboard/internal/config"
	"skillboard/internal/database"
	"skillboard/internal/skillboard"
)

// NewStorageFromConfig creates a Storage implementation based on the storage config type.
func NewStorageFromConfig(ctx context.Context, cfg config.StorageConfig, clock skillboard.Clock) (skillboard.Storage, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStorage(), nil
	case "filesystem":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("filesystem storage requires data_dir to be set")
		}
		fs, err := NewFileSystemStorage(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite storage requires data_dir to be set")
		}
		db, err := database.NewSQLiteStorage(filepath.Join(cfg.DataDir, "skillboard.db"), clock)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "s3":
		s3, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

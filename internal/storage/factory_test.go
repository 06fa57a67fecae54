package storage

import (
	"context"
	"path/filepath"
	"testing"

	"skillboard/internal/config"
	"skillboard/internal/skillboard"
)

func TestNewStorageFromConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.StorageConfig{Type: "memory"}},
		{name: "filesystem", cfg: config.StorageConfig{Type: "filesystem", DataDir: filepath.Join(dir, "fs")}},
		{name: "filesystem without data_dir", cfg: config.StorageConfig{Type: "filesystem"}, wantErr: true},
		{name: "sqlite", cfg: config.StorageConfig{Type: "sqlite", DataDir: filepath.Join(dir, "db")}},
		{name: "sqlite without data_dir", cfg: config.StorageConfig{Type: "sqlite"}, wantErr: true},
		{name: "s3 without bucket", cfg: config.StorageConfig{Type: "s3"}, wantErr: true},
		{name: "unknown", cfg: config.StorageConfig{Type: "floppy"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStorageFromConfig(context.Background(), tt.cfg, skillboard.RealClock{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStorageFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got != nil {
					t.Errorf("NewStorageFromConfig() = %v, want nil on error", got)
				}
				return
			}
			defer got.Close()

			if err := got.ValidateSetup(); err != nil {
				t.Errorf("ValidateSetup() error = %v", err)
			}
		})
	}
}

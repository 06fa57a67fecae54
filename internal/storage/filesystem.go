package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"skillboard/internal/skillboard"
)

// FileSystemStorage stores each document as a JSON file:
//
//	<root>/
//	  skillboard_skills.json
//	  skillboard_preferences.json
//	  skillboard_suggestions.json
//
// Writes go to a temp file that is renamed over the target, so a crash never
// leaves a half-written document behind.
type FileSystemStorage struct {
	root string
}

var _ skillboard.Storage = (*FileSystemStorage)(nil)

// NewFileSystemStorage creates the root directory if needed.
func NewFileSystemStorage(root string) (*FileSystemStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileSystemStorage{root: root}, nil
}

func (f *FileSystemStorage) Read(key string) ([]byte, bool, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

func (f *FileSystemStorage) Write(key string, data []byte) error {
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ValidateSetup verifies that the root is a writable directory.
func (f *FileSystemStorage) ValidateSetup() error {
	info, err := os.Stat(f.root)
	if err != nil {
		return fmt.Errorf("data directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path is not a directory: %s", f.root)
	}

	probe, err := os.CreateTemp(f.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func (f *FileSystemStorage) Close() error {
	return nil
}

// Root returns the directory holding the documents.
func (f *FileSystemStorage) Root() string {
	return f.root
}

func (f *FileSystemStorage) pathFor(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.root, key+".json"), nil
}

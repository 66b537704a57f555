package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File persists each key as a JSON document under a base directory.
type File struct {
	baseDir string
	mu      sync.Mutex
}

// NewFile ensures the base directory exists and returns a handle.
func NewFile(baseDir string) (*File, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &File{baseDir: baseDir}, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.resolve(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	return data, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.resolve(key), value, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.resolve(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete store file: %w", err)
	}
	return nil
}

func (f *File) resolve(key string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", "\\", "_", "..", "_")
	return filepath.Join(f.baseDir, replacer.Replace(key)+".json")
}

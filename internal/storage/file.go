package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// FileBackend stores one JSON file per table under a data directory.
// Writes go through a temp file and an atomic rename, so a crash leaves
// either the old table or the new one, never a torn write.
type FileBackend struct {
	dataDir string
	mu      sync.Mutex
}

func NewFileBackend(dataDir string) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dataDir: dataDir}, nil
}

func (f *FileBackend) path(table Table) string {
	return filepath.Join(f.dataDir, string(table)+".json")
}

func (f *FileBackend) Get(table Table) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileBackend) Set(table Table, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tempPath := f.path(table) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return ErrQuotaExceeded
		}
		return err
	}
	if err := os.Rename(tempPath, f.path(table)); err != nil {
		return err
	}
	return nil
}

func (f *FileBackend) Remove(table Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(table)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileBackend) Ping() error {
	info, err := os.Stat(f.dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dataDir)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	domainRepo "github.com/nashon/pos-ledger-api/internal/domain/repository"
)

type fileStore struct {
	dir string
}

// NewFileStore creates a snapshot repository backed by one JSON file per
// key inside dir. This is the default storage driver for a terminal.
func NewFileStore(dir string) (domainRepo.SnapshotRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return data, nil
}

func (s *fileStore) Save(_ context.Context, key string, data []byte) error {
	// Write-then-rename so a crash mid-write never truncates the snapshot.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to commit snapshot %s: %w", key, err)
	}
	return nil
}

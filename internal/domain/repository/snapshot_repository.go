package repository

import "context"

// SnapshotRepository persists whole document collections as serialized
// blobs under fixed keys. Stores write the full collection on every
// mutation, so the interface is deliberately a two-method key-value one.
type SnapshotRepository interface {
	// Load returns the blob stored under key, or (nil, nil) when no
	// snapshot has been written yet.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

package repository

import (
	"context"

	"github.com/rpggio/sidetrack/internal/domain/project"
)

// BlobStore is a key-value store of opaque snapshots.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ProjectStore loads and saves the whole project collection. Load returns
// ErrNotFound when nothing was saved yet and ErrCorrupt when the stored
// snapshot cannot be decoded.
type ProjectStore interface {
	Load(ctx context.Context) ([]project.Project, error)
	Save(ctx context.Context, projects []project.Project) error
}

package driven

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ModelStore persists model catalog records.
type ModelStore interface {
	// Save stores or updates a record.
	// Returns domain.ErrAlreadyExists if another record has the same name.
	Save(ctx context.Context, record domain.ModelRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.ModelRecord, error)

	// GetByName retrieves a record by name.
	GetByName(ctx context.Context, name string) (*domain.ModelRecord, error)

	// GetByPath retrieves a record by artifact path.
	GetByPath(ctx context.Context, path string) (*domain.ModelRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// List returns all records ordered by name.
	List(ctx context.Context) ([]domain.ModelRecord, error)
}

// ArtifactHasher computes content digests of model artifacts.
type ArtifactHasher interface {
	// Hash returns the hex digest and size of the file at path.
	Hash(path string) (digest string, size int64, err error)
}

package driving

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ModelService manages the model catalog.
type ModelService interface {
	// Register records an existing artifact under name.
	// An empty name defaults to the artifact's base name.
	Register(ctx context.Context, path, name string) (*domain.ModelRecord, error)

	// Get resolves a record by ID, name or path.
	Get(ctx context.Context, ref string) (*domain.ModelRecord, error)

	// List returns all records.
	List(ctx context.Context) ([]domain.ModelRecord, error)

	// Remove deletes a record, and the artifact too when deleteFile is set.
	Remove(ctx context.Context, ref string, deleteFile bool) error

	// Verify checks every artifact against its recorded checksum.
	Verify(ctx context.Context) ([]domain.VerifyResult, error)

	// Sync registers unrecorded artifacts in dir and drops records whose
	// artifacts are gone.
	Sync(ctx context.Context, dir string) (added, removed int, err error)

	// Watch keeps the catalog in step with dir until ctx is done.
	// onChange is called after each applied change. May be nil.
	Watch(ctx context.Context, dir string, onChange func(domain.ArtifactChange)) error
}

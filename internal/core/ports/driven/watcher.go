package driven

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ArtifactWatcher reports model artifacts appearing and disappearing.
type ArtifactWatcher interface {
	// Watch starts watching dir. The channel is closed when ctx is done
	// or Close is called.
	Watch(ctx context.Context, dir string) (<-chan domain.ArtifactChange, error)

	// Close stops watching and releases resources.
	Close() error
}

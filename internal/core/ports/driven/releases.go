package driven

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ReleaseLister lists published releases of the external tool.
type ReleaseLister interface {
	// ListReleases returns up to limit releases, newest first.
	ListReleases(ctx context.Context, limit int) ([]domain.Release, error)
}

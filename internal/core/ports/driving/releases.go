package driving

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// ReleaseService lists published tool releases.
type ReleaseService interface {
	// List returns up to limit releases, newest first.
	List(ctx context.Context, limit int) ([]domain.Release, error)

	// Current returns the version the installer is configured for.
	Current() string
}

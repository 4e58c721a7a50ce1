package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
)

// Ensure ReleaseService implements the interface.
var _ driving.ReleaseService = (*ReleaseService)(nil)

// defaultReleaseLimit is used when List is called with a non-positive limit.
const defaultReleaseLimit = 10

// ReleaseService lists published fastText releases.
type ReleaseService struct {
	lister    driven.ReleaseLister
	installer driven.Installer
}

// NewReleaseService creates a new release service.
func NewReleaseService(lister driven.ReleaseLister, installer driven.Installer) *ReleaseService {
	return &ReleaseService{lister: lister, installer: installer}
}

// List returns up to limit releases, newest first.
func (s *ReleaseService) List(ctx context.Context, limit int) ([]domain.Release, error) {
	if limit <= 0 {
		limit = defaultReleaseLimit
	}
	releases, err := s.lister.ListReleases(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	return releases, nil
}

// Current returns the version the installer is configured for.
func (s *ReleaseService) Current() string {
	return s.installer.Version()
}

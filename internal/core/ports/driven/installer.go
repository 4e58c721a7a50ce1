package driven

import "context"

// Installer makes the tool executable present in the work directory.
type Installer interface {
	// EnsureInstalled runs the install sequence.
	// Returns *domain.InstallError naming the first failing step.
	EnsureInstalled(ctx context.Context) error

	// Installed reports whether the executable exists on disk.
	Installed() bool

	// Version returns the tool version this installer fetches.
	Version() string

	// Uninstall removes the executable. Absence is not an error.
	Uninstall() error
}

package driven

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// Shell runs commands through the system shell.
type Shell interface {
	// Run executes the invocation and blocks until it exits.
	// A non-zero exit is reported in the result, not as an error.
	// Returns an error wrapping domain.ErrEnvironment if the shell cannot be
	// started, or the context error if the run was cancelled.
	Run(ctx context.Context, inv domain.Invocation) (*domain.InvocationResult, error)
}

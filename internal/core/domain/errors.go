package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown model kind or preprocessor.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates no embedding model is configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Process Errors.

	// ErrEnvironment indicates the system shell could not be started at all.
	// This is unrecoverable.
	ErrEnvironment = errors.New("shell unavailable")

	// ErrToolMissing indicates the tool executable is absent and could not
	// be made present by a single install attempt.
	ErrToolMissing = errors.New("tool executable missing")

	// ErrInstallFailed indicates a step of the install sequence failed.
	ErrInstallFailed = errors.New("tool installation failed")

	// ErrToolFailed indicates the executable ran and exited non-zero.
	ErrToolFailed = errors.New("tool invocation failed")

	// ErrMalformedOutput indicates captured output did not match the shape
	// expected for the requested operation.
	ErrMalformedOutput = errors.New("malformed tool output")
)

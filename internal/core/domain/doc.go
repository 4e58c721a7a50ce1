// Package domain defines the core entities for ftwrap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - InvocationResult: The captured outcome of one tool subprocess
//   - Model: A trained model artifact and the base name it was derived from
//   - ScoredLabel: One label/score pair emitted by the tool
//   - ModelRecord: A catalog entry describing a trained model
//   - ToolSettings: Construction-time configuration for the tool adapters
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

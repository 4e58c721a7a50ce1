// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Shell: Runs one shell command and captures its outcome
//   - Installer: Ensures the tool executable is present in the work dir
//   - TextTool: Typed operations over the tool's command line
//   - ModelStore: Model catalog persistence
//   - ArtifactHasher: Content digests for model artifacts
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Sentence embeddings. Without it, the embed command is disabled.
//   - Preprocessor: Query text preprocessing. Without it, queries are passed through.
//   - ReleaseLister: Lists published tool releases. Without it, releases is disabled.
//   - ArtifactWatcher: Watches a directory for model artifacts.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

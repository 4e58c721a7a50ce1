package domain

import "time"

// ModelRecord is a catalog entry for a model artifact on disk.
type ModelRecord struct {
	// ID is the unique record identifier.
	ID string `json:"id" yaml:"id"`

	// Name is a human-friendly name, unique within the catalog.
	Name string `json:"name" yaml:"name"`

	// Path is the artifact path.
	Path string `json:"path" yaml:"path"`

	// Kind is the training subcommand, empty when unknown.
	Kind ModelKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Options are the training options, when the model was trained here.
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`

	// Checksum is the hex BLAKE3 digest of the artifact.
	Checksum string `json:"checksum" yaml:"checksum"`

	// SizeBytes is the artifact size.
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the record was last stored.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ChangeType indicates what happened to an artifact on disk.
type ChangeType int

const (
	// ChangeCreated indicates a new or rewritten artifact.
	ChangeCreated ChangeType = iota

	// ChangeDeleted indicates an artifact was removed or renamed away.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ArtifactChange is emitted by an artifact watcher.
type ArtifactChange struct {
	Type ChangeType
	Path string
}

// VerifyStatus is the outcome of checking an artifact against its record.
type VerifyStatus string

// Verification outcomes.
const (
	VerifyOK       VerifyStatus = "ok"
	VerifyMismatch VerifyStatus = "mismatch"
	VerifyMissing  VerifyStatus = "missing"
)

// VerifyResult pairs a record with its verification outcome.
type VerifyResult struct {
	Record ModelRecord  `json:"record" yaml:"record"`
	Status VerifyStatus `json:"status" yaml:"status"`
	Actual string       `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// Package checksum computes content digests of model artifacts.
package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Ensure Hasher implements the interface.
var _ driven.ArtifactHasher = (*Hasher)(nil)

// Hasher streams a file through BLAKE3.
type Hasher struct{}

// New returns a BLAKE3 artifact hasher.
func New() *Hasher {
	return &Hasher{}
}

// Hash returns the hex BLAKE3-256 digest and size of the file at path.
func (h *Hasher) Hash(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("opening artifact: %w", err)
	}
	defer f.Close()

	hasher := blake3.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return "", 0, fmt.Errorf("hashing artifact: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

// Sum returns the hex BLAKE3-256 digest of data.
func Sum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

package mcp

import (
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Text runs tool operations.
	Text driving.TextService

	// Models exposes the model catalog as resources. Optional.
	Models driving.ModelService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Text == nil {
		return ErrMissingTextService
	}
	return nil
}

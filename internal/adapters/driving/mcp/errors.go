// Package mcp provides an MCP (Model Context Protocol) server adapter for ftwrap.
// It lets AI assistants classify text, look up neighbours and extract
// vectors with local fastText models.
package mcp

import "errors"

// ErrMissingTextService is returned when the text service is not provided.
var ErrMissingTextService = errors.New("mcp: text service is required")

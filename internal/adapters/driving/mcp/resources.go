package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ftwrap resources.
	uriScheme = "ftwrap://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "models",
		Name:        "models",
		Description: "Catalog of recorded fastText models",
		MIMEType:    "application/json",
	}, s.handleModelsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "models/{ref}",
		Name:        "model",
		Description: "One catalog record, by ID or name",
		MIMEType:    "application/json",
	}, s.handleModelResource)
}

// handleModelsResource returns the catalog.
func (s *Server) handleModelsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Models == nil {
		return jsonResource(req.Params.URI, []domain.ModelRecord{})
	}

	records, err := s.ports.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	if records == nil {
		records = []domain.ModelRecord{}
	}

	return jsonResource(req.Params.URI, records)
}

// handleModelResource returns one catalog record.
func (s *Server) handleModelResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Models == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ref := extractModelRef(req.Params.URI)
	if ref == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Models.Get(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting model: %w", err)
	}

	return jsonResource(req.Params.URI, record)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractModelRef extracts the reference from a URI like ftwrap://models/{ref}.
func extractModelRef(uri string) string {
	const prefix = uriScheme + "models/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	ref := strings.TrimPrefix(uri, prefix)
	if strings.Contains(ref, "/") {
		return ""
	}
	return ref
}

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// defaultK is used when a tool call omits k.
const defaultK = 5

// PredictInput is the input schema for the predict tool.
type PredictInput struct {
	Model string   `json:"model" jsonschema:"catalog name, ID or path of a supervised model"`
	Lines []string `json:"lines" jsonschema:"texts to classify, one per entry"`
	K     int      `json:"k,omitempty" jsonschema:"labels per text (default 5)"`
}

// PredictOutput is the output schema for the predict tool.
type PredictOutput struct {
	Predictions []LabelsOutput `json:"predictions"`
}

// LabelsOutput holds the ranked labels for one input.
type LabelsOutput struct {
	Input  string               `json:"input"`
	Labels []domain.ScoredLabel `json:"labels"`
}

// NeighboursInput is the input schema for the nearest and analogies tools.
type NeighboursInput struct {
	Model   string   `json:"model" jsonschema:"catalog name, ID or path of an unsupervised model"`
	Queries []string `json:"queries" jsonschema:"words for nearest; 'A B C' triplets for analogies"`
	K       int      `json:"k,omitempty" jsonschema:"results per query (default 5)"`
}

// NeighboursOutput is the output schema for the nearest and analogies tools.
type NeighboursOutput struct {
	Results []LabelsOutput `json:"results"`
}

// VectorsInput is the input schema for the vector tools.
type VectorsInput struct {
	Model  string   `json:"model" jsonschema:"catalog name, ID or path of a model"`
	Inputs []string `json:"inputs" jsonschema:"words or sentences to embed"`
}

// VectorsOutput is the output schema for the vector tools.
type VectorsOutput struct {
	Vectors    [][]float64 `json:"vectors"`
	Dimensions int         `json:"dimensions"`
}

// EvaluateInput is the input schema for the evaluate tool.
type EvaluateInput struct {
	Model string `json:"model" jsonschema:"catalog name, ID or path of a supervised model"`
	Path  string `json:"path" jsonschema:"labelled test file"`
	K     int    `json:"k,omitempty" jsonschema:"labels per line (default 1)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "predict",
		Description: "Classify texts with a supervised fastText model",
	}, s.handlePredict)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nearest",
		Description: "Find the nearest neighbours of words",
	}, s.handleNearest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analogies",
		Description: "Answer A - B + C word analogies",
	}, s.handleAnalogies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "word_vectors",
		Description: "Get the vector of each word",
	}, s.handleWordVectors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentence_vectors",
		Description: "Get the vector of each sentence",
	}, s.handleSentenceVectors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "evaluate",
		Description: "Compute precision and recall of a supervised model on a test file",
	}, s.handleEvaluate)
}

func (s *Server) handlePredict(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PredictInput,
) (*mcp.CallToolResult, PredictOutput, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, PredictOutput{}, err
	}

	results, err := s.ports.Text.PredictProb(ctx, input.Model, domain.Query{Lines: input.Lines}, kOrDefault(input.K, defaultK))
	if err != nil {
		return nil, PredictOutput{}, err
	}
	return nil, PredictOutput{Predictions: pairLabels(input.Lines, results)}, nil
}

func (s *Server) handleNearest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NeighboursInput,
) (*mcp.CallToolResult, NeighboursOutput, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, NeighboursOutput{}, err
	}

	results, err := s.ports.Text.Nearest(ctx, input.Model, input.Queries, kOrDefault(input.K, defaultK))
	if err != nil {
		return nil, NeighboursOutput{}, err
	}
	return nil, NeighboursOutput{Results: pairLabels(input.Queries, results)}, nil
}

func (s *Server) handleAnalogies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NeighboursInput,
) (*mcp.CallToolResult, NeighboursOutput, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, NeighboursOutput{}, err
	}

	results, err := s.ports.Text.Analogies(ctx, input.Model, input.Queries, kOrDefault(input.K, defaultK))
	if err != nil {
		return nil, NeighboursOutput{}, err
	}
	return nil, NeighboursOutput{Results: pairLabels(input.Queries, results)}, nil
}

func (s *Server) handleWordVectors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VectorsInput,
) (*mcp.CallToolResult, VectorsOutput, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, VectorsOutput{}, err
	}

	vectors, err := s.ports.Text.WordVectors(ctx, input.Model, input.Inputs)
	if err != nil {
		return nil, VectorsOutput{}, err
	}
	return nil, vectorsOutput(vectors), nil
}

func (s *Server) handleSentenceVectors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VectorsInput,
) (*mcp.CallToolResult, VectorsOutput, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, VectorsOutput{}, err
	}

	vectors, err := s.ports.Text.SentenceVectors(ctx, input.Model, input.Inputs)
	if err != nil {
		return nil, VectorsOutput{}, err
	}
	return nil, vectorsOutput(vectors), nil
}

func (s *Server) handleEvaluate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, domain.EvaluationResult, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, domain.EvaluationResult{}, err
	}

	result, err := s.ports.Text.Evaluate(ctx, input.Model, input.Path, kOrDefault(input.K, 1))
	if err != nil {
		return nil, domain.EvaluationResult{}, err
	}
	return nil, result, nil
}

// pairLabels zips inputs with their results. Results beyond the inputs
// are labelled by position.
func pairLabels(inputs []string, results [][]domain.ScoredLabel) []LabelsOutput {
	out := make([]LabelsOutput, len(results))
	for i, labels := range results {
		out[i].Labels = labels
		if out[i].Labels == nil {
			out[i].Labels = []domain.ScoredLabel{}
		}
		if i < len(inputs) {
			out[i].Input = inputs[i]
		}
	}
	return out
}

func vectorsOutput(vectors [][]float64) VectorsOutput {
	out := VectorsOutput{Vectors: vectors}
	if out.Vectors == nil {
		out.Vectors = [][]float64{}
	}
	if len(vectors) > 0 {
		out.Dimensions = len(vectors[0])
	}
	return out
}

func kOrDefault(k, def int) int {
	if k <= 0 {
		return def
	}
	return k
}

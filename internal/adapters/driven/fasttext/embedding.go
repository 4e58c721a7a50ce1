package fasttext

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// pingText is embedded by Ping to check the model loads.
const pingText = "ping"

// EmbeddingConfig holds configuration for the fastText embedding service.
type EmbeddingConfig struct {
	// Model is the .bin artifact of an unsupervised model.
	Model string
}

// EmbeddingService generates embeddings as sentence vectors.
type EmbeddingService struct {
	tool  driven.TextTool
	model string

	mu         sync.RWMutex
	dimensions int
}

// NewEmbeddingService creates a new fastText embedding service.
func NewEmbeddingService(tool driven.TextTool, cfg EmbeddingConfig) (*EmbeddingService, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: embedding model not set", domain.ErrEmbeddingUnavailable)
	}
	return &EmbeddingService{tool: tool, model: cfg.Model}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds all texts in a single tool run.
// Line breaks inside a text are folded to spaces.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	sentences := make([]string, len(texts))
	for i, t := range texts {
		sentences[i] = strings.Join(strings.Fields(t), " ")
	}

	vecs, err := s.tool.SentenceVectors(ctx, s.model, sentences)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	embeddings := make([][]float32, len(vecs))
	for i, v := range vecs {
		embedding := make([]float32, len(v))
		for j, x := range v {
			embedding[j] = float32(x)
		}
		embeddings[i] = embedding
	}

	if len(embeddings) > 0 {
		s.mu.Lock()
		s.dimensions = len(embeddings[0])
		s.mu.Unlock()
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size seen on the last run.
func (s *EmbeddingService) Dimensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimensions
}

// ModelName returns the model artifact path.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping embeds a short text to check the model loads.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.Embed(ctx, pingText); err != nil {
		return fmt.Errorf("fasttext: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

package driving

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// TextService runs model operations against the external tool.
type TextService interface {
	// Install runs the install sequence unless the executable is present.
	Install(ctx context.Context, force bool) error

	// Installed reports whether the executable is present.
	Installed() bool

	// Train trains a model and records it in the catalog.
	Train(ctx context.Context, req domain.TrainRequest) (*domain.ModelRecord, error)

	// Predict returns the top k labels per query line.
	Predict(ctx context.Context, model string, q domain.Query, k int) ([][]string, error)

	// PredictProb returns the top k labels with scores per query line.
	PredictProb(ctx context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error)

	// Nearest returns the k nearest neighbours of each word.
	Nearest(ctx context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error)

	// Analogies answers "A - B + C" triplets.
	Analogies(ctx context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error)

	// WordVectors returns one vector per word.
	WordVectors(ctx context.Context, model string, words []string) ([][]float64, error)

	// SentenceVectors returns one vector per sentence.
	SentenceVectors(ctx context.Context, model string, sentences []string) ([][]float64, error)

	// Evaluate tests a supervised model against a labelled file.
	Evaluate(ctx context.Context, model, path string, k int) (domain.EvaluationResult, error)

	// Embed returns embeddings from the configured embedding service.
	// Returns domain.ErrEmbeddingUnavailable if none is configured.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

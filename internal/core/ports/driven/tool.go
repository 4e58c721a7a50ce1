package driven

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

// TextTool exposes the external tool's subcommands as typed operations.
// Every call may trigger a one-time install of the executable.
type TextTool interface {
	// Train runs a training subcommand and returns the written artifact.
	Train(ctx context.Context, kind domain.ModelKind, opts domain.Options) (domain.Model, error)

	// Predict returns the top k labels per query line.
	Predict(ctx context.Context, model string, q domain.Query, k int) ([][]string, error)

	// PredictProb returns the top k labels with scores per query line.
	PredictProb(ctx context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error)

	// Nearest returns the k nearest neighbours of each word.
	Nearest(ctx context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error)

	// Analogies answers "A - B + C" triplets with k candidates each.
	Analogies(ctx context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error)

	// WordVectors returns one vector per word.
	WordVectors(ctx context.Context, model string, words []string) ([][]float64, error)

	// SentenceVectors returns one vector per sentence.
	SentenceVectors(ctx context.Context, model string, sentences []string) ([][]float64, error)

	// Test evaluates a supervised model against a labelled file.
	Test(ctx context.Context, model, path string, k int) (domain.EvaluationResult, error)
}

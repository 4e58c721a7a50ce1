package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, the embed command is disabled.
//
// The fastText implementation embeds text as sentence vectors of an
// unsupervised model.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one tool run.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	// Zero until the first successful embedding.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service can produce an embedding.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
	"github.com/custodia-labs/ftwrap/internal/logger"
)

// Ensure TextService implements the interface.
var _ driving.TextService = (*TextService)(nil)

// TextService runs tool operations one at a time and keeps the model
// catalog up to date with trained artifacts.
type TextService struct {
	// mu serialises tool use; the work directory is shared state.
	mu sync.Mutex

	tool      driven.TextTool
	installer driven.Installer
	models    driven.ModelStore
	hasher    driven.ArtifactHasher
	workDir   string

	preprocessors driven.PreprocessorPipeline
	embedding     driven.EmbeddingService
}

// NewTextService creates a new text service.
// models and hasher are optional; without them trained models are not
// recorded and model references are used as paths.
func NewTextService(
	tool driven.TextTool,
	installer driven.Installer,
	models driven.ModelStore,
	hasher driven.ArtifactHasher,
	workDir string,
) *TextService {
	return &TextService{
		tool:      tool,
		installer: installer,
		models:    models,
		hasher:    hasher,
		workDir:   workDir,
	}
}

// SetPreprocessors sets the pipeline applied to query lines and sentences.
func (s *TextService) SetPreprocessors(pipeline driven.PreprocessorPipeline) {
	s.preprocessors = pipeline
}

// SetEmbeddingService sets the service used by Embed.
func (s *TextService) SetEmbeddingService(embedding driven.EmbeddingService) {
	s.embedding = embedding
}

// Install runs the install sequence unless the executable is present.
// force removes an existing executable first.
func (s *TextService) Install(ctx context.Context, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if force {
		if err := s.installer.Uninstall(); err != nil {
			return err
		}
	}
	if s.installer.Installed() {
		logger.Debug("fasttext %s already installed", s.installer.Version())
		return nil
	}
	return s.installer.EnsureInstalled(ctx)
}

// Installed reports whether the executable is present.
func (s *TextService) Installed() bool {
	return s.installer.Installed()
}

// Train trains a model and records it in the catalog.
func (s *TextService) Train(ctx context.Context, req domain.TrainRequest) (*domain.ModelRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("train %s: %w", req.Kind, err)
	}

	logger.Section("Train")
	logger.Debug("Kind: %s, options: %v", req.Kind, req.Options)

	s.mu.Lock()
	model, err := s.tool.Train(ctx, req.Kind, req.Options)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	record := &domain.ModelRecord{
		Name:    req.Name,
		Path:    s.absPath(model.Path),
		Kind:    model.Kind,
		Options: req.Options,
	}
	if record.Name == "" {
		record.Name = filepath.Base(model.Base)
	}

	if s.models == nil || s.hasher == nil {
		return record, nil
	}

	digest, size, err := s.hasher.Hash(record.Path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", record.Path, err)
	}
	record.Checksum = digest
	record.SizeBytes = size

	// Retraining into the same artifact keeps its catalog identity.
	existing, err := s.models.GetByPath(ctx, record.Path)
	switch {
	case err == nil:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if req.Name == "" {
			record.Name = existing.Name
		}
	case errors.Is(err, domain.ErrNotFound):
		record.ID = uuid.New().String()
	default:
		return nil, fmt.Errorf("looking up %s: %w", record.Path, err)
	}

	if err := s.models.Save(ctx, *record); err != nil {
		return nil, fmt.Errorf("recording model: %w", err)
	}
	logger.Debug("Recorded model %s (%s) at %s", record.Name, record.ID, record.Path)

	return record, nil
}

// Predict returns the top k labels per query line.
func (s *TextService) Predict(ctx context.Context, model string, q domain.Query, k int) ([][]string, error) {
	path, err := s.resolve(ctx, model)
	if err != nil {
		return nil, err
	}
	q = s.preprocessQuery(q)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.Predict(ctx, path, q, k)
}

// PredictProb returns the top k labels with scores per query line.
func (s *TextService) PredictProb(ctx context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error) {
	path, err := s.resolve(ctx, model)
	if err != nil {
		return nil, err
	}
	q = s.preprocessQuery(q)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.PredictProb(ctx, path, q, k)
}

// Nearest returns the k nearest neighbours of each word.
func (s *TextService) Nearest(ctx context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error) {
	path, err := s.resolve(ctx, model)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.Nearest(ctx, path, words, k)
}

// Analogies answers "A - B + C" triplets.
func (s *TextService) Analogies(ctx context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error) {
	path, err := s.resolve(ctx, model)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.Analogies(ctx, path, triplets, k)
}

// WordVectors returns one vector per word.
func (s *TextService) WordVectors(ctx context.Context, model string, words []string) ([][]float64, error) {
	path, err := s.resolve(ctx, model)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.WordVectors(ctx, path, words)
}

// SentenceVectors returns one vector per sentence.
func (s *TextService) SentenceVectors(ctx context.Context, model string, sentences []string) ([][]float64, error) {
	path, err := s.resolve(ctx, model)
	if err != nil {
		return nil, err
	}
	sentences = s.preprocess(sentences)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.SentenceVectors(ctx, path, sentences)
}

// Evaluate tests a supervised model against a labelled file.
func (s *TextService) Evaluate(ctx context.Context, model, path string, k int) (domain.EvaluationResult, error) {
	modelPath, err := s.resolve(ctx, model)
	if err != nil {
		return domain.EvaluationResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool.Test(ctx, modelPath, path, k)
}

// Embed returns embeddings from the configured embedding service.
func (s *TextService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	texts = s.preprocess(texts)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.embedding.EmbedBatch(ctx, texts)
}

// resolve maps a catalog name or ID to its artifact path.
// Anything else is passed through as a path.
func (s *TextService) resolve(ctx context.Context, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("%w: model is required", domain.ErrInvalidInput)
	}
	if s.models == nil {
		return ref, nil
	}

	record, err := s.models.GetByName(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		record, err = s.models.Get(ctx, ref)
	}
	switch {
	case err == nil:
		logger.Debug("Model %q resolved to %s", ref, record.Path)
		return record.Path, nil
	case errors.Is(err, domain.ErrNotFound):
		return ref, nil
	default:
		return "", fmt.Errorf("resolving model %q: %w", ref, err)
	}
}

func (s *TextService) preprocessQuery(q domain.Query) domain.Query {
	if q.Path == "" {
		q.Lines = s.preprocess(q.Lines)
	}
	return q
}

func (s *TextService) preprocess(lines []string) []string {
	if s.preprocessors == nil || len(lines) == 0 {
		return lines
	}
	return s.preprocessors.Process(lines)
}

// absPath anchors a tool-relative artifact path at the work directory.
func (s *TextService) absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(filepath.Join(s.workDir, path))
	if err != nil {
		return filepath.Join(s.workDir, path)
	}
	return abs
}

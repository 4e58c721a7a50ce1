package mcp

import (
	"context"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
)

// mockTextService is a mock implementation of driving.TextService.
type mockTextService struct {
	scored     [][]domain.ScoredLabel
	vectors    [][]float64
	evaluation domain.EvaluationResult
	err        error

	lastModel string
	lastQuery domain.Query
	lastWords []string
	lastK     int
	calls     int
}

var _ driving.TextService = (*mockTextService)(nil)

func (m *mockTextService) Install(context.Context, bool) error { return m.err }
func (m *mockTextService) Installed() bool                     { return true }

func (m *mockTextService) Train(context.Context, domain.TrainRequest) (*domain.ModelRecord, error) {
	return nil, m.err
}

func (m *mockTextService) Predict(_ context.Context, model string, q domain.Query, k int) ([][]string, error) {
	m.capture(model, q, nil, k)
	return nil, m.err
}

func (m *mockTextService) PredictProb(_ context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error) {
	m.capture(model, q, nil, k)
	return m.scored, m.err
}

func (m *mockTextService) Nearest(_ context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error) {
	m.capture(model, domain.Query{}, words, k)
	return m.scored, m.err
}

func (m *mockTextService) Analogies(_ context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error) {
	m.capture(model, domain.Query{}, triplets, k)
	return m.scored, m.err
}

func (m *mockTextService) WordVectors(_ context.Context, model string, words []string) ([][]float64, error) {
	m.capture(model, domain.Query{}, words, 0)
	return m.vectors, m.err
}

func (m *mockTextService) SentenceVectors(_ context.Context, model string, sentences []string) ([][]float64, error) {
	m.capture(model, domain.Query{}, sentences, 0)
	return m.vectors, m.err
}

func (m *mockTextService) Evaluate(_ context.Context, model, path string, k int) (domain.EvaluationResult, error) {
	m.capture(model, domain.Query{Path: path}, nil, k)
	return m.evaluation, m.err
}

func (m *mockTextService) Embed(context.Context, []string) ([][]float32, error) {
	return nil, m.err
}

func (m *mockTextService) capture(model string, q domain.Query, words []string, k int) {
	m.calls++
	m.lastModel = model
	m.lastQuery = q
	m.lastWords = words
	m.lastK = k
}

// mockModelService is a mock implementation of driving.ModelService.
type mockModelService struct {
	records []domain.ModelRecord
	err     error
}

var _ driving.ModelService = (*mockModelService)(nil)

func (m *mockModelService) Register(context.Context, string, string) (*domain.ModelRecord, error) {
	return nil, m.err
}

func (m *mockModelService) Get(_ context.Context, ref string) (*domain.ModelRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == ref || m.records[i].Name == ref {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockModelService) List(context.Context) ([]domain.ModelRecord, error) {
	return m.records, m.err
}

func (m *mockModelService) Remove(context.Context, string, bool) error { return m.err }

func (m *mockModelService) Verify(context.Context) ([]domain.VerifyResult, error) {
	return nil, m.err
}

func (m *mockModelService) Sync(context.Context, string) (int, int, error) { return 0, 0, m.err }

func (m *mockModelService) Watch(context.Context, string, func(domain.ArtifactChange)) error {
	return m.err
}

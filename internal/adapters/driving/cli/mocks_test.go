package cli

import (
	"context"
	"sort"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
)

// mockTextService is a mock implementation of driving.TextService.
type mockTextService struct {
	installed    bool
	installCalls int
	installForce bool

	trainRecord *domain.ModelRecord
	lastTrain   domain.TrainRequest

	labels     [][]string
	scored     [][]domain.ScoredLabel
	vectors    [][]float64
	embeddings [][]float32
	evaluation domain.EvaluationResult
	err        error

	lastModel  string
	lastQuery  domain.Query
	lastInputs []string
	lastK      int
}

var _ driving.TextService = (*mockTextService)(nil)

func (m *mockTextService) Install(_ context.Context, force bool) error {
	m.installCalls++
	m.installForce = force
	if m.err == nil {
		m.installed = true
	}
	return m.err
}

func (m *mockTextService) Installed() bool { return m.installed }

func (m *mockTextService) Train(_ context.Context, req domain.TrainRequest) (*domain.ModelRecord, error) {
	m.lastTrain = req
	if m.err != nil {
		return nil, m.err
	}
	return m.trainRecord, nil
}

func (m *mockTextService) Predict(_ context.Context, model string, q domain.Query, k int) ([][]string, error) {
	m.lastModel, m.lastQuery, m.lastK = model, q, k
	return m.labels, m.err
}

func (m *mockTextService) PredictProb(_ context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error) {
	m.lastModel, m.lastQuery, m.lastK = model, q, k
	return m.scored, m.err
}

func (m *mockTextService) Nearest(_ context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error) {
	m.lastModel, m.lastInputs, m.lastK = model, words, k
	return m.scored, m.err
}

func (m *mockTextService) Analogies(_ context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error) {
	m.lastModel, m.lastInputs, m.lastK = model, triplets, k
	return m.scored, m.err
}

func (m *mockTextService) WordVectors(_ context.Context, model string, words []string) ([][]float64, error) {
	m.lastModel, m.lastInputs = model, words
	return m.vectors, m.err
}

func (m *mockTextService) SentenceVectors(_ context.Context, model string, sentences []string) ([][]float64, error) {
	m.lastModel, m.lastInputs = model, sentences
	return m.vectors, m.err
}

func (m *mockTextService) Evaluate(_ context.Context, model, path string, k int) (domain.EvaluationResult, error) {
	m.lastModel, m.lastQuery, m.lastK = model, domain.Query{Path: path}, k
	return m.evaluation, m.err
}

func (m *mockTextService) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.lastInputs = texts
	return m.embeddings, m.err
}

// mockModelService is a mock implementation of driving.ModelService.
type mockModelService struct {
	records []domain.ModelRecord
	verify  []domain.VerifyResult
	changes []domain.ArtifactChange
	added   int
	removed int
	err     error

	lastRef    string
	lastName   string
	lastDir    string
	lastDelete bool
}

var _ driving.ModelService = (*mockModelService)(nil)

func (m *mockModelService) Register(_ context.Context, path, name string) (*domain.ModelRecord, error) {
	m.lastRef, m.lastName = path, name
	if m.err != nil {
		return nil, m.err
	}
	if name == "" {
		name = "registered"
	}
	return &domain.ModelRecord{ID: "id-new", Name: name, Path: path}, nil
}

func (m *mockModelService) Get(_ context.Context, ref string) (*domain.ModelRecord, error) {
	m.lastRef = ref
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

func (m *mockModelService) Remove(_ context.Context, ref string, deleteFile bool) error {
	m.lastRef, m.lastDelete = ref, deleteFile
	return m.err
}

func (m *mockModelService) Verify(context.Context) ([]domain.VerifyResult, error) {
	return m.verify, m.err
}

func (m *mockModelService) Sync(_ context.Context, dir string) (int, int, error) {
	m.lastDir = dir
	return m.added, m.removed, m.err
}

func (m *mockModelService) Watch(_ context.Context, dir string, onChange func(domain.ArtifactChange)) error {
	m.lastDir = dir
	for _, c := range m.changes {
		onChange(c)
	}
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    domain.ToolSettings
	values      map[string]string
	validateErr error
	err         error
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultToolSettings(),
		values:   make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (*domain.ToolSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.ToolSettings) error {
	m.settings = *settings
	return m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if value == "" {
		delete(m.values, key)
		return nil
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	keys := []string{"tool.version", "tool.work_dir", "github.token"}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) GetDefaults() domain.ToolSettings {
	return domain.DefaultToolSettings()
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

// mockReleaseService is a mock implementation of driving.ReleaseService.
type mockReleaseService struct {
	releases  []domain.Release
	current   string
	err       error
	lastLimit int
}

var _ driving.ReleaseService = (*mockReleaseService)(nil)

func (m *mockReleaseService) List(_ context.Context, limit int) ([]domain.Release, error) {
	m.lastLimit = limit
	return m.releases, m.err
}

func (m *mockReleaseService) Current() string { return m.current }

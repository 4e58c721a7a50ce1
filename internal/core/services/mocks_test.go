package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// mockTool records calls and returns canned results.
type mockTool struct {
	mu    sync.Mutex
	calls []toolCall

	trainErr   error
	labels     [][]string
	scored     [][]domain.ScoredLabel
	vectors    [][]float64
	evaluation domain.EvaluationResult
	err        error

	// active counts concurrent calls; maxActive is the peak.
	active    int
	maxActive int
}

type toolCall struct {
	op    string
	model string
	query domain.Query
	words []string
	k     int
}

var _ driven.TextTool = (*mockTool)(nil)

func (m *mockTool) record(c toolCall) func() {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.active++
	if m.active > m.maxActive {
		m.maxActive = m.active
	}
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.active--
		m.mu.Unlock()
	}
}

func (m *mockTool) lastCall() toolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

func (m *mockTool) Train(_ context.Context, kind domain.ModelKind, opts domain.Options) (domain.Model, error) {
	defer m.record(toolCall{op: "train", model: opts[domain.OptionOutput]})()
	if m.trainErr != nil {
		return domain.Model{}, m.trainErr
	}
	return domain.NewModel(kind, opts[domain.OptionOutput]), nil
}

func (m *mockTool) Predict(_ context.Context, model string, q domain.Query, k int) ([][]string, error) {
	defer m.record(toolCall{op: "predict", model: model, query: q, k: k})()
	return m.labels, m.err
}

func (m *mockTool) PredictProb(_ context.Context, model string, q domain.Query, k int) ([][]domain.ScoredLabel, error) {
	defer m.record(toolCall{op: "predict-prob", model: model, query: q, k: k})()
	return m.scored, m.err
}

func (m *mockTool) Nearest(_ context.Context, model string, words []string, k int) ([][]domain.ScoredLabel, error) {
	defer m.record(toolCall{op: "nn", model: model, words: words, k: k})()
	return m.scored, m.err
}

func (m *mockTool) Analogies(_ context.Context, model string, triplets []string, k int) ([][]domain.ScoredLabel, error) {
	defer m.record(toolCall{op: "analogies", model: model, words: triplets, k: k})()
	return m.scored, m.err
}

func (m *mockTool) WordVectors(_ context.Context, model string, words []string) ([][]float64, error) {
	defer m.record(toolCall{op: "word-vectors", model: model, words: words})()
	return m.vectors, m.err
}

func (m *mockTool) SentenceVectors(_ context.Context, model string, sentences []string) ([][]float64, error) {
	defer m.record(toolCall{op: "sentence-vectors", model: model, words: sentences})()
	return m.vectors, m.err
}

func (m *mockTool) Test(_ context.Context, model, path string, k int) (domain.EvaluationResult, error) {
	defer m.record(toolCall{op: "test", model: model, query: domain.Query{Path: path}, k: k})()
	return m.evaluation, m.err
}

// mockInstaller tracks install and uninstall calls.
type mockInstaller struct {
	installed  bool
	installs   int
	uninstalls int
	installErr error
	version    string
}

var _ driven.Installer = (*mockInstaller)(nil)

func (m *mockInstaller) EnsureInstalled(context.Context) error {
	m.installs++
	if m.installErr != nil {
		return m.installErr
	}
	m.installed = true
	return nil
}

func (m *mockInstaller) Installed() bool { return m.installed }

func (m *mockInstaller) Version() string {
	if m.version == "" {
		return domain.DefaultToolVersion
	}
	return m.version
}

func (m *mockInstaller) Uninstall() error {
	m.uninstalls++
	m.installed = false
	return nil
}

// mockHasher derives a digest from the file content so tests can tell
// artifacts apart without a real hash.
type mockHasher struct {
	err error
}

var _ driven.ArtifactHasher = (*mockHasher)(nil)

func (m *mockHasher) Hash(path string) (string, int64, error) {
	if m.err != nil {
		return "", 0, m.err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return "sum:" + string(data), int64(len(data)), nil
}

// upperPipeline uppercases every line.
type upperPipeline struct{}

func (upperPipeline) Process(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.ToUpper(l)
	}
	return out
}

// mockEmbedding returns one fixed vector per text.
type mockEmbedding struct {
	texts []string
}

var _ driven.EmbeddingService = (*mockEmbedding)(nil)

func (m *mockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.texts = append(m.texts, texts...)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.5, -0.5}
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int            { return 2 }
func (m *mockEmbedding) ModelName() string          { return "mock.bin" }
func (m *mockEmbedding) Ping(context.Context) error { return nil }
func (m *mockEmbedding) Close() error               { return nil }

// mockWatcher replays changes and closes the channel.
type mockWatcher struct {
	changes  []domain.ArtifactChange
	watchErr error
	closed   bool
}

var _ driven.ArtifactWatcher = (*mockWatcher)(nil)

func (m *mockWatcher) Watch(_ context.Context, _ string) (<-chan domain.ArtifactChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	ch := make(chan domain.ArtifactChange, len(m.changes))
	for _, c := range m.changes {
		ch <- c
	}
	close(ch)
	return ch, nil
}

func (m *mockWatcher) Close() error {
	m.closed = true
	return nil
}

// mockLister returns canned releases.
type mockLister struct {
	releases []domain.Release
	err      error
	limit    int
}

var _ driven.ReleaseLister = (*mockLister)(nil)

func (m *mockLister) ListReleases(_ context.Context, limit int) ([]domain.Release, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.releases) {
		return m.releases[:limit], nil
	}
	return m.releases, nil
}

var errBoom = errors.New("boom")

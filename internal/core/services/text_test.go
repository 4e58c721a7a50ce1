package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ftwrap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

type textFixture struct {
	service   *TextService
	tool      *mockTool
	installer *mockInstaller
	models    *memory.ModelStore
	workDir   string
}

func newTextFixture(t *testing.T) *textFixture {
	t.Helper()
	f := &textFixture{
		tool:      &mockTool{},
		installer: &mockInstaller{installed: true},
		models:    memory.NewModelStore(),
		workDir:   t.TempDir(),
	}
	f.service = NewTextService(f.tool, f.installer, f.models, &mockHasher{}, f.workDir)
	return f
}

// writeArtifact creates the file a training run would produce.
func (f *textFixture) writeArtifact(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.workDir, rel)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestTextService_Install(t *testing.T) {
	t.Run("skips when present", func(t *testing.T) {
		f := newTextFixture(t)
		require.NoError(t, f.service.Install(context.Background(), false))
		assert.Zero(t, f.installer.installs)
	})

	t.Run("installs when absent", func(t *testing.T) {
		f := newTextFixture(t)
		f.installer.installed = false
		require.NoError(t, f.service.Install(context.Background(), false))
		assert.Equal(t, 1, f.installer.installs)
		assert.True(t, f.service.Installed())
	})

	t.Run("force reinstalls", func(t *testing.T) {
		f := newTextFixture(t)
		require.NoError(t, f.service.Install(context.Background(), true))
		assert.Equal(t, 1, f.installer.uninstalls)
		assert.Equal(t, 1, f.installer.installs)
	})

	t.Run("install failure", func(t *testing.T) {
		f := newTextFixture(t)
		f.installer.installed = false
		f.installer.installErr = &domain.InstallError{Step: "build", Index: 2}
		err := f.service.Install(context.Background(), false)
		assert.ErrorIs(t, err, domain.ErrInstallFailed)
	})
}

func TestTextService_Train_RecordsModel(t *testing.T) {
	f := newTextFixture(t)
	path := f.writeArtifact(t, "news.bin", "weights")

	record, err := f.service.Train(context.Background(), domain.TrainRequest{
		Kind:    domain.ModelKindSupervised,
		Options: domain.Options{"input": "train.txt", "output": "news", "epoch": "5"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "news", record.Name)
	assert.Equal(t, path, record.Path)
	assert.Equal(t, domain.ModelKindSupervised, record.Kind)
	assert.Equal(t, "sum:weights", record.Checksum)
	assert.Equal(t, int64(len("weights")), record.SizeBytes)
	assert.Equal(t, "5", record.Options["epoch"])

	stored, err := f.models.GetByName(context.Background(), "news")
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)
}

func TestTextService_Train_RetrainKeepsIdentity(t *testing.T) {
	f := newTextFixture(t)
	ctx := context.Background()
	f.writeArtifact(t, "news.ftz", "v1")
	req := domain.TrainRequest{
		Kind:    domain.ModelKindQuantized,
		Options: domain.Options{"input": "news.bin", "output": "news"},
		Name:    "compact",
	}

	first, err := f.service.Train(ctx, req)
	require.NoError(t, err)

	f.writeArtifact(t, "news.ftz", "v2")
	req.Name = ""
	second, err := f.service.Train(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "compact", second.Name)
	assert.Equal(t, "sum:v2", second.Checksum)

	records, err := f.models.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestTextService_Train_Errors(t *testing.T) {
	t.Run("invalid request", func(t *testing.T) {
		f := newTextFixture(t)
		_, err := f.service.Train(context.Background(), domain.TrainRequest{
			Kind:    domain.ModelKindCBOW,
			Options: domain.Options{"input": "data.txt"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, f.tool.calls)
	})

	t.Run("tool failure", func(t *testing.T) {
		f := newTextFixture(t)
		f.tool.trainErr = &domain.ToolError{Result: &domain.InvocationResult{ExitCode: 1}}
		_, err := f.service.Train(context.Background(), domain.TrainRequest{
			Kind:    domain.ModelKindSkipgram,
			Options: domain.Options{"input": "data.txt", "output": "wiki"},
		})
		assert.ErrorIs(t, err, domain.ErrToolFailed)
	})

	t.Run("artifact missing", func(t *testing.T) {
		f := newTextFixture(t)
		_, err := f.service.Train(context.Background(), domain.TrainRequest{
			Kind:    domain.ModelKindSkipgram,
			Options: domain.Options{"input": "data.txt", "output": "wiki"},
		})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestTextService_Train_WithoutCatalog(t *testing.T) {
	tool := &mockTool{}
	service := NewTextService(tool, &mockInstaller{installed: true}, nil, nil, "/work")

	record, err := service.Train(context.Background(), domain.TrainRequest{
		Kind:    domain.ModelKindSkipgram,
		Options: domain.Options{"input": "data.txt", "output": "out/wiki"},
	})
	require.NoError(t, err)
	assert.Empty(t, record.ID)
	assert.Equal(t, "wiki", record.Name)
	assert.Equal(t, filepath.Join("/work", "out", "wiki.bin"), record.Path)
}

func TestTextService_ResolvesCatalogNames(t *testing.T) {
	f := newTextFixture(t)
	ctx := context.Background()
	require.NoError(t, f.models.Save(ctx, domain.ModelRecord{ID: "id-1", Name: "news", Path: "/models/news.bin"}))

	_, err := f.service.Predict(ctx, "news", domain.Query{Path: "test.txt"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "/models/news.bin", f.tool.lastCall().model)

	_, err = f.service.Nearest(ctx, "id-1", []string{"king"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "/models/news.bin", f.tool.lastCall().model)

	_, err = f.service.WordVectors(ctx, "other.bin", []string{"king"})
	require.NoError(t, err)
	assert.Equal(t, "other.bin", f.tool.lastCall().model)

	_, err = f.service.Analogies(ctx, "", []string{"a b c"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTextService_Preprocessing(t *testing.T) {
	f := newTextFixture(t)
	f.service.SetPreprocessors(upperPipeline{})
	ctx := context.Background()

	_, err := f.service.PredictProb(ctx, "m.bin", domain.Query{Lines: []string{"hello world"}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"HELLO WORLD"}, f.tool.lastCall().query.Lines)
	assert.Equal(t, 2, f.tool.lastCall().k)

	_, err = f.service.Predict(ctx, "m.bin", domain.Query{Path: "in.txt"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "in.txt", f.tool.lastCall().query.Path)
	assert.Empty(t, f.tool.lastCall().query.Lines)

	_, err = f.service.SentenceVectors(ctx, "m.bin", []string{"a sentence"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A SENTENCE"}, f.tool.lastCall().words)

	// Word lookups are not rewritten.
	_, err = f.service.Nearest(ctx, "m.bin", []string{"Paris"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, f.tool.lastCall().words)
}

func TestTextService_Evaluate(t *testing.T) {
	f := newTextFixture(t)
	f.tool.evaluation = domain.EvaluationResult{Examples: 3000, K: 1, Precision: 0.5, Recall: 0.5}

	result, err := f.service.Evaluate(context.Background(), "m.bin", "valid.txt", 1)
	require.NoError(t, err)
	assert.Equal(t, 3000, result.Examples)
	assert.Equal(t, "valid.txt", f.tool.lastCall().query.Path)
}

func TestTextService_Embed(t *testing.T) {
	f := newTextFixture(t)
	_, err := f.service.Embed(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	embedding := &mockEmbedding{}
	f.service.SetEmbeddingService(embedding)
	f.service.SetPreprocessors(upperPipeline{})

	vectors, err := f.service.Embed(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, []string{"ONE", "TWO"}, embedding.texts)
}

func TestTextService_SerialisesToolUse(t *testing.T) {
	f := newTextFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.service.WordVectors(ctx, "m.bin", []string{"w"})
		}()
	}
	wg.Wait()

	assert.Len(t, f.tool.calls, 20)
	assert.Equal(t, 1, f.tool.maxActive)
}

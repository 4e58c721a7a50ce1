package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

func sampleRecords() []domain.ModelRecord {
	return []domain.ModelRecord{
		{
			ID:        "id-1",
			Name:      "cooking",
			Path:      "/work/cooking.bin",
			Kind:      domain.ModelKindSupervised,
			Options:   domain.Options{"input": "cooking.train", "output": "cooking", "epoch": "25"},
			Checksum:  "abc123",
			SizeBytes: 3 * 1024 * 1024,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{ID: "id-2", Name: "wiki", Path: "/work/wiki.bin", SizeBytes: 512},
	}
}

func TestModelsListCmd(t *testing.T) {
	ts := setupTestServices(t)
	ts.models.records = sampleRecords()

	out, err := execute(t, "", "models", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "cooking")
	assert.Contains(t, out, "3.0 MiB")
	assert.Contains(t, out, "512 B")
}

func TestModelsCmd_DefaultsToList(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "models")

	require.NoError(t, err)
	assert.Contains(t, out, "No models recorded.")
}

func TestModelsListCmd_JSONEmpty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "-f", "json", "models", "list")

	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestModelsShowCmd(t *testing.T) {
	ts := setupTestServices(t)
	ts.models.records = sampleRecords()

	out, err := execute(t, "", "models", "show", "cooking")

	require.NoError(t, err)
	assert.Contains(t, out, "ID:       id-1")
	assert.Contains(t, out, "Checksum: abc123")
	assert.Contains(t, out, "Created:  2026-01-02T03:04:05Z")
	assert.Contains(t, out, "-epoch 25")
}

func TestModelsShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "models", "show", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModelsRegisterCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "models", "register", "/tmp/a.bin", "--name", "alpha")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.bin", ts.models.lastRef)
	assert.Equal(t, "alpha", ts.models.lastName)
	assert.Contains(t, out, `Registered model "alpha"`)
}

func TestModelsRemoveCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "models", "remove", "cooking")
	require.NoError(t, err)
	assert.False(t, ts.models.lastDelete)
	assert.Contains(t, out, "Removed model cooking.")

	out, err = execute(t, "", "models", "remove", "cooking", "--delete")
	require.NoError(t, err)
	assert.True(t, ts.models.lastDelete)
	assert.Contains(t, out, "deleted its artifact")
}

func TestModelsVerifyCmd(t *testing.T) {
	records := sampleRecords()

	t.Run("all ok", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.models.verify = []domain.VerifyResult{{Record: records[0], Status: domain.VerifyOK}}

		out, err := execute(t, "", "models", "verify")
		require.NoError(t, err)
		assert.Contains(t, out, "1 of 1 models verified.")
	})

	t.Run("failures return error", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.models.verify = []domain.VerifyResult{
			{Record: records[0], Status: domain.VerifyMismatch, Actual: "def"},
			{Record: records[1], Status: domain.VerifyMissing},
		}

		out, err := execute(t, "", "models", "verify")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 models failed verification")
		assert.Contains(t, out, "mismatch")
		assert.Contains(t, out, "missing")
	})
}

func TestModelsSyncCmd(t *testing.T) {
	ts := setupTestServices(t)
	ts.models.added, ts.models.removed = 2, 1

	out, err := execute(t, "", "models", "sync", "/models")

	require.NoError(t, err)
	assert.Equal(t, "/models", ts.models.lastDir)
	assert.Contains(t, out, "Synced /models: 2 added, 1 removed.")
}

func TestModelsSyncCmd_DirFallbacks(t *testing.T) {
	t.Run("work dir flag", func(t *testing.T) {
		ts := setupTestServices(t)
		_, err := execute(t, "", "--work-dir", "/flag", "models", "sync")
		require.NoError(t, err)
		assert.Equal(t, "/flag", ts.models.lastDir)
	})

	t.Run("configured work dir", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.settings.settings.WorkDir = "/configured"
		_, err := execute(t, "", "models", "sync")
		require.NoError(t, err)
		assert.Equal(t, "/configured", ts.models.lastDir)
	})

	t.Run("current directory", func(t *testing.T) {
		ts := setupTestServices(t)
		_, err := execute(t, "", "models", "sync")
		require.NoError(t, err)
		assert.Equal(t, ".", ts.models.lastDir)
	})
}

func TestModelsWatchCmd(t *testing.T) {
	ts := setupTestServices(t)
	ts.models.changes = []domain.ArtifactChange{
		{Type: domain.ChangeCreated, Path: "/models/a.bin"},
		{Type: domain.ChangeDeleted, Path: "/models/b.ftz"},
	}

	out, err := execute(t, "", "models", "watch", "/models")

	require.NoError(t, err)
	assert.Contains(t, out, "Watching /models")
	assert.Contains(t, out, "created /models/a.bin")
	assert.Contains(t, out, "deleted /models/b.ftz")
}

func TestModelsWatchCmd_Error(t *testing.T) {
	ts := setupTestServices(t)
	ts.models.err = errors.New("not a directory")

	_, err := execute(t, "", "models", "watch", "/file")

	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.n))
	}
}

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

func TestPredictCmd_RequiresModel(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "predict")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts between 1 and 2 arg(s)")
}

func TestPredictCmd_File(t *testing.T) {
	ts := setupTestServices(t)
	ts.text.labels = [][]string{{"__label__baking", "__label__bread"}}

	out, err := execute(t, "", "predict", "cooking", "cooking.valid", "-k", "2")

	require.NoError(t, err)
	assert.Equal(t, "cooking", ts.text.lastModel)
	assert.Equal(t, domain.Query{Path: "cooking.valid"}, ts.text.lastQuery)
	assert.Equal(t, 2, ts.text.lastK)
	assert.Equal(t, "__label__baking __label__bread\n", out)
}

func TestPredictCmd_Stdin(t *testing.T) {
	ts := setupTestServices(t)
	ts.text.labels = [][]string{{"__label__a"}, {"__label__b"}}

	_, err := execute(t, "first line\n\n  \nsecond line\r\n", "predict", "cooking")

	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line"}, ts.text.lastQuery.Lines)
	assert.Empty(t, ts.text.lastQuery.Path)
	assert.Equal(t, 1, ts.text.lastK)
}

func TestPredictCmd_DashReadsStdin(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "text\n", "predict", "cooking", "-")

	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, ts.text.lastQuery.Lines)
}

func TestPredictCmd_EmptyStdin(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "predict", "cooking")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPredictCmd_Prob(t *testing.T) {
	ts := setupTestServices(t)
	ts.text.scored = [][]domain.ScoredLabel{{{Label: "__label__a", Score: 0.9}, {Label: "__label__b", Score: 0.05}}}

	out, err := execute(t, "", "predict", "cooking", "valid.txt", "--prob", "-k", "2")

	require.NoError(t, err)
	assert.Equal(t, "__label__a 0.90000 __label__b 0.05000\n", out)
}

func TestPredictCmd_JSONIncludesInput(t *testing.T) {
	ts := setupTestServices(t)
	ts.text.scored = [][]domain.ScoredLabel{{{Label: "__label__a", Score: 1}}}

	out, err := execute(t, "best pan?\n", "-f", "json", "predict", "cooking", "--prob")

	require.NoError(t, err)
	assert.Contains(t, out, `"input": "best pan?"`)
	assert.Contains(t, out, `"label": "__label__a"`)
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	lines, err := readLines(strings.NewReader(long + "\nshort\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], len(long))
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrEnvironment", ErrEnvironment},
		{"ErrToolMissing", ErrToolMissing},
		{"ErrInstallFailed", ErrInstallFailed},
		{"ErrToolFailed", ErrToolFailed},
		{"ErrMalformedOutput", ErrMalformedOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

func TestInstallError(t *testing.T) {
	t.Run("failed step names the step", func(t *testing.T) {
		err := &InstallError{
			Step:   "build",
			Index:  2,
			Result: &InvocationResult{ExitCode: 2, Stderr: []byte("make: *** no rule")},
		}

		assert.True(t, errors.Is(err, ErrInstallFailed))
		assert.False(t, errors.Is(err, ErrToolFailed))
		assert.Contains(t, err.Error(), "install step 3 (build)")
		assert.Contains(t, err.Error(), "exit status 2")
		assert.Contains(t, err.Error(), "no rule")
	})

	t.Run("spawn failure unwraps to cause", func(t *testing.T) {
		cause := fmt.Errorf("%w: sh not found", ErrEnvironment)
		err := &InstallError{Step: "fetch", Err: cause}

		assert.True(t, errors.Is(err, ErrInstallFailed))
		assert.True(t, errors.Is(err, ErrEnvironment))
		assert.Contains(t, err.Error(), "install step 1 (fetch)")
	})

	t.Run("wrapped install error is still detected", func(t *testing.T) {
		var err error = fmt.Errorf("ensure installed: %w", &InstallError{Step: "unpack", Index: 1})

		var ie *InstallError
		assert.True(t, errors.As(err, &ie))
		assert.Equal(t, "unpack", ie.Step)
	})
}

func TestToolError(t *testing.T) {
	t.Run("prefers stderr detail", func(t *testing.T) {
		err := &ToolError{
			Command: "./fasttext predict missing.bin -",
			Result: &InvocationResult{
				ExitCode: 1,
				Stdout:   []byte("ignored"),
				Stderr:   []byte("Model file cannot be opened for loading!\n"),
			},
		}

		assert.True(t, errors.Is(err, ErrToolFailed))
		assert.Contains(t, err.Error(), "exit status 1")
		assert.Contains(t, err.Error(), "cannot be opened")
		assert.NotContains(t, err.Error(), "ignored")
	})

	t.Run("falls back to stdout", func(t *testing.T) {
		err := &ToolError{
			Command: "./fasttext",
			Result:  &InvocationResult{ExitCode: 1, Stdout: []byte("usage: fasttext <command> <args>")},
		}

		assert.Contains(t, err.Error(), "usage: fasttext")
	})

	t.Run("signal termination", func(t *testing.T) {
		err := &ToolError{
			Command: "./fasttext nn m.bin",
			Result:  &InvocationResult{ExitCode: -1, Signal: "killed"},
		}

		assert.Contains(t, err.Error(), "signal killed")
	})
}

func TestParseError(t *testing.T) {
	err := &ParseError{Line: 4, Content: "cat 0.5 dog", Reason: "odd token count"}

	assert.True(t, errors.Is(err, ErrMalformedOutput))
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), `"cat 0.5 dog"`)
	assert.Contains(t, err.Error(), "odd token count")
}

func TestParseError_TruncatesLongContent(t *testing.T) {
	err := &ParseError{Line: 1, Content: strings.Repeat("x", 2000), Reason: "bad"}

	assert.Less(t, len(err.Error()), 700)
	assert.Contains(t, err.Error(), "...")
}

func TestTruncate_StopsOnRuneBoundary(t *testing.T) {
	// The leading byte puts the cut point in the middle of a two-byte rune.
	got := truncate("x" + strings.Repeat("é", 600))

	assert.True(t, utf8.ValidString(got), "truncated detail must stay valid UTF-8")
	assert.True(t, strings.HasSuffix(got, "é..."), got)
	assert.LessOrEqual(t, len(got), maxDetail+len("..."))
}

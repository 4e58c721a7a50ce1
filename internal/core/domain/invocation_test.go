package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvocationResult_Success(t *testing.T) {
	tests := []struct {
		name     string
		result   InvocationResult
		expected bool
	}{
		{"zero exit", InvocationResult{ExitCode: 0}, true},
		{"non-zero exit", InvocationResult{ExitCode: 1}, false},
		{"signal", InvocationResult{ExitCode: -1, Signal: "killed"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.Success())
		})
	}
}

func TestInvocationResult_CommandNotFound(t *testing.T) {
	assert.True(t, (&InvocationResult{ExitCode: 127}).CommandNotFound())
	assert.False(t, (&InvocationResult{ExitCode: 1}).CommandNotFound())
	assert.False(t, (&InvocationResult{ExitCode: 0}).CommandNotFound())
}

func TestInvocationResult_LenientText(t *testing.T) {
	r := &InvocationResult{
		Stdout: []byte("ok \xff\xfe done"),
		Stderr: []byte("warn"),
	}

	assert.Equal(t, "ok � done", r.StdoutText())
	assert.Equal(t, "warn", r.StderrText())
}

func TestInvocationResult_Status(t *testing.T) {
	assert.Equal(t, "exit status 3", (&InvocationResult{ExitCode: 3}).Status())
	assert.Equal(t, "signal terminated", (&InvocationResult{ExitCode: -1, Signal: "terminated"}).Status())
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExitCommandNotFound is the status a POSIX shell returns when it cannot
// locate the command it was asked to run.
const ExitCommandNotFound = 127

// Invocation is one shell command to run.
type Invocation struct {
	// Command is passed verbatim to the shell, so it may contain pipes.
	Command string

	// Stdin is fed to the command's standard input when non-empty.
	Stdin string
}

// InvocationResult is the captured outcome of one shell command.
// It is created by the shell adapter and never mutated afterwards.
type InvocationResult struct {
	// Command is the command that produced this result.
	Command string

	// ExitCode is the process exit status, or -1 when terminated by a signal.
	ExitCode int

	// Signal names the terminating signal. Empty for a normal exit.
	Signal string

	// Stdout is the captured standard output.
	Stdout []byte

	// Stderr is the captured standard error.
	Stderr []byte

	// Duration is the wall-clock time the command took.
	Duration time.Duration
}

// Success returns true if the command exited normally with status 0.
func (r *InvocationResult) Success() bool {
	return r.Signal == "" && r.ExitCode == 0
}

// Signaled returns true if the command was terminated by a signal.
func (r *InvocationResult) Signaled() bool {
	return r.Signal != ""
}

// CommandNotFound returns true if the shell reported it could not find
// the command.
func (r *InvocationResult) CommandNotFound() bool {
	return r.Signal == "" && r.ExitCode == ExitCommandNotFound
}

// StdoutText decodes stdout leniently, replacing invalid UTF-8.
func (r *InvocationResult) StdoutText() string {
	return strings.ToValidUTF8(string(r.Stdout), "�")
}

// StderrText decodes stderr leniently, replacing invalid UTF-8.
func (r *InvocationResult) StderrText() string {
	return strings.ToValidUTF8(string(r.Stderr), "�")
}

// Status describes how the command ended.
func (r *InvocationResult) Status() string {
	if r.Signaled() {
		return "signal " + r.Signal
	}
	return fmt.Sprintf("exit status %d", r.ExitCode)
}

package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxDetail bounds how much captured output is quoted in an error message.
const maxDetail = 512

// InstallError reports which step of the install sequence failed.
type InstallError struct {
	// Step is the step name (e.g. "fetch", "build").
	Step string

	// Index is the zero-based position of the step in the sequence.
	Index int

	// Result is the captured outcome of the failing step.
	// Nil when the step could not be started.
	Result *InvocationResult

	// Err is the underlying cause when the step could not be started.
	Err error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("install step %d (%s): %v", e.Index+1, e.Step, e.Err)
	}
	if e.Result == nil {
		return fmt.Sprintf("install step %d (%s) failed", e.Index+1, e.Step)
	}
	return fmt.Sprintf("install step %d (%s) failed with %s: %s",
		e.Index+1, e.Step, e.Result.Status(), truncate(e.Result.StderrText()))
}

// Is reports ErrInstallFailed as the category of every InstallError.
func (e *InstallError) Is(target error) bool {
	return target == ErrInstallFailed
}

// Unwrap returns the spawn error, if any.
func (e *InstallError) Unwrap() error {
	return e.Err
}

// ToolError reports a tool run that exited non-zero while the executable
// was present.
type ToolError struct {
	// Command is the shell command that was run.
	Command string

	// Result is the captured outcome.
	Result *InvocationResult
}

func (e *ToolError) Error() string {
	if e.Result == nil {
		return fmt.Sprintf("%s: %s", ErrToolFailed, e.Command)
	}
	detail := strings.TrimSpace(e.Result.StderrText())
	if detail == "" {
		detail = strings.TrimSpace(e.Result.StdoutText())
	}
	return fmt.Sprintf("%s: %q exited with %s: %s",
		ErrToolFailed, e.Command, e.Result.Status(), truncate(detail))
}

// Is reports ErrToolFailed as the category of every ToolError.
func (e *ToolError) Is(target error) bool {
	return target == ErrToolFailed
}

// ParseError names the output line that could not be parsed.
type ParseError struct {
	// Line is the one-based line number within the parsed text.
	Line int

	// Content is the offending line.
	Content string

	// Reason describes what was expected.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s: %q",
		ErrMalformedOutput, e.Line, e.Reason, truncate(e.Content))
}

// Is reports ErrMalformedOutput as the category of every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedOutput
}

func truncate(s string) string {
	if len(s) <= maxDetail {
		return s
	}
	cut := maxDetail
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

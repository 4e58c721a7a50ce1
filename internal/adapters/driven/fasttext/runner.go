package fasttext

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// maxInvocations bounds one Run: the first attempt plus one retry after
// installing.
const maxInvocations = 2

// Runner runs the tool from the work directory, installing it on demand.
type Runner struct {
	shell      driven.Shell
	installer  driven.Installer
	executable string
	log        *zap.Logger
}

// NewRunner creates a Runner for the named executable.
// A nil logger disables logging.
func NewRunner(shell driven.Shell, installer driven.Installer, executable string, log *zap.Logger) *Runner {
	if executable == "" {
		executable = domain.DefaultExecutable
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		shell:      shell,
		installer:  installer,
		executable: executable,
		log:        log,
	}
}

// Command returns the shell command that runs the tool with args.
func (r *Runner) Command(args string) string {
	return "./" + r.executable + " " + args
}

// Run invokes the tool with args, feeding stdin when non-empty.
//
// The executable is checked on disk before the first attempt and installed
// if absent. A "command not found" exit with the executable still absent
// triggers one install and one retry; a repeat is domain.ErrToolMissing. Any
// other non-zero exit is a *domain.ToolError returned with the result.
func (r *Runner) Run(ctx context.Context, args, stdin string) (*domain.InvocationResult, error) {
	return r.run(ctx, domain.Invocation{Command: r.Command(args), Stdin: stdin}, nil)
}

// RunHead is Run with the tool's stdout cut after limit lines.
//
// The pipeline reports head's status, so the tool's own status is echoed to
// stderr and replaces it. A tool stopped by SIGPIPE once head has read enough
// lines has succeeded.
func (r *Runner) RunHead(ctx context.Context, args string, limit int, stdin string) (*domain.InvocationResult, error) {
	command := fmt.Sprintf("{ %s; echo \"%s$?\" >&2; } | head -n %d", r.Command(args), statusMarker, limit)
	return r.run(ctx, domain.Invocation{Command: command, Stdin: stdin}, toolStatus)
}

func (r *Runner) run(ctx context.Context, inv domain.Invocation, status func(*domain.InvocationResult) *domain.InvocationResult) (*domain.InvocationResult, error) {
	installed := false

	if !r.installer.Installed() {
		r.log.Debug("executable absent before run", zap.String("executable", r.executable))
		if err := r.installer.EnsureInstalled(ctx); err != nil {
			return nil, err
		}
		installed = true
	}

	for attempt := 1; attempt <= maxInvocations; attempt++ {
		result, err := r.shell.Run(ctx, inv)
		if err != nil {
			return nil, err
		}
		if status != nil {
			result = status(result)
		}
		if result.Success() {
			return result, nil
		}

		if !result.CommandNotFound() || r.installer.Installed() {
			return result, &domain.ToolError{Command: inv.Command, Result: result}
		}

		if installed {
			return result, fmt.Errorf("%w: ./%s not found after installing %s",
				domain.ErrToolMissing, r.executable, r.installer.Version())
		}

		r.log.Debug("executable missing, installing", zap.Int("attempt", attempt))
		if err := r.installer.EnsureInstalled(ctx); err != nil {
			return nil, err
		}
		installed = true
	}

	return nil, fmt.Errorf("%w: ./%s", domain.ErrToolMissing, r.executable)
}

// statusMarker prefixes the tool's exit status on stderr in RunHead.
const statusMarker = "ftwrap-tool-status:"

// exitBrokenPipe is the shell status of a process killed by SIGPIPE.
const exitBrokenPipe = 128 + 13

// toolStatus returns a copy of result carrying the status echoed by
// RunHead, with the marker line removed from stderr. A missing marker means
// the tool's status is unknown and the run is reported as failed.
func toolStatus(result *domain.InvocationResult) *domain.InvocationResult {
	out := *result
	if result.Signaled() {
		return &out
	}

	lines := strings.Split(string(result.Stderr), "\n")
	found := false
	for i := len(lines) - 1; i >= 0; i-- {
		code, ok := strings.CutPrefix(lines[i], statusMarker)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			break
		}
		if n == exitBrokenPipe {
			n = 0
		}
		out.ExitCode = n
		out.Stderr = []byte(strings.Join(append(lines[:i:i], lines[i+1:]...), "\n"))
		found = true
		break
	}
	if !found && out.ExitCode == 0 {
		out.ExitCode = -1
	}
	return &out
}

// Package shell runs tool commands through the system shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Shell = (*Invoker)(nil)

// DefaultShell is the interpreter used for every command.
const DefaultShell = "sh"

// Config holds Invoker configuration.
type Config struct {
	// WorkDir is the directory commands run in. Empty means the process
	// working directory.
	WorkDir string

	// Shell is the interpreter invoked as "<shell> -c <command>".
	Shell string

	// Timeout bounds each command. Zero means no bound.
	Timeout time.Duration
}

// Invoker runs one shell command at a time and captures its outcome.
type Invoker struct {
	workDir string
	shell   string
	timeout time.Duration
	log     *zap.Logger
}

// New creates an Invoker. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Invoker {
	if cfg.Shell == "" {
		cfg.Shell = DefaultShell
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Invoker{
		workDir: cfg.WorkDir,
		shell:   cfg.Shell,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// WorkDir returns the directory commands run in.
func (i *Invoker) WorkDir() string {
	return i.workDir
}

// Run executes inv.Command with "<shell> -c" and waits for it to exit.
//
// Output is captured fully in memory. A non-zero exit is returned in the
// result with a nil error. When ctx is cancelled or the timeout fires the
// whole process group is killed and the context error is returned.
func (i *Invoker) Run(ctx context.Context, inv domain.Invocation) (*domain.InvocationResult, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	cmd := exec.Command(i.shell, "-c", inv.Command)
	cmd.Dir = i.workDir
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	i.log.Debug("running command", zap.String("command", inv.Command), zap.Int("stdin_bytes", len(inv.Stdin)))

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrEnvironment, i.shell, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case <-ctx.Done():
		killProcessGroup(cmd)
		<-done
		i.log.Debug("command cancelled", zap.String("command", inv.Command), zap.Error(ctx.Err()))
		return nil, fmt.Errorf("command cancelled: %w", ctx.Err())
	case err = <-done:
	}

	result := &domain.InvocationResult{
		Command:  inv.Command,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: wait: %v", domain.ErrEnvironment, err)
		}
		result.ExitCode = exitErr.ExitCode()
		if sig := signalName(exitErr.ProcessState); sig != "" {
			result.ExitCode = -1
			result.Signal = sig
		}
	}

	i.log.Debug("command finished",
		zap.String("command", inv.Command),
		zap.String("status", result.Status()),
		zap.Duration("duration", result.Duration),
		zap.Int("stdout_bytes", len(result.Stdout)),
		zap.Int("stderr_bytes", len(result.Stderr)))

	return result, nil
}

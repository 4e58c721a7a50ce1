// Package installer fetches, builds and places the fastText executable.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Installer = (*Installer)(nil)

// Step is one command of the install sequence.
type Step struct {
	Name    string
	Command string
}

// Installer runs the install sequence in the work directory.
// Concurrent EnsureInstalled calls in one process share a single run.
// Two processes installing into the same directory race on fixed file
// names and are not supported.
type Installer struct {
	shell    driven.Shell
	settings domain.ToolSettings
	log      *zap.Logger
	group    singleflight.Group
}

// New creates an Installer. A nil logger disables logging.
func New(shell driven.Shell, settings domain.ToolSettings, log *zap.Logger) (*Installer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("installer settings: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Installer{
		shell:    shell,
		settings: settings,
		log:      log,
	}, nil
}

// Steps returns the install sequence for the configured version.
func (i *Installer) Steps() []Step {
	s := i.settings
	archive := s.ArchiveName()
	source := s.SourceDir()

	return []Step{
		{Name: "fetch", Command: fmt.Sprintf("wget -q -O %s %s", archive, s.ResolvedArchiveURL())},
		{Name: "unpack", Command: fmt.Sprintf("unzip -q -o %s", archive)},
		{Name: "build", Command: fmt.Sprintf("cd %s && make", source)},
		{Name: "install", Command: fmt.Sprintf("mv %s/fasttext ./%s", source, s.Executable)},
		{Name: "clean-source", Command: fmt.Sprintf("rm -r %s", source)},
		{Name: "clean-archive", Command: fmt.Sprintf("rm %s", archive)},
	}
}

// Version returns the tool version this installer fetches.
func (i *Installer) Version() string {
	return i.settings.Version
}

// ExecutablePath returns where the executable is placed.
func (i *Installer) ExecutablePath() string {
	return filepath.Join(i.settings.WorkDir, i.settings.Executable)
}

// Installed reports whether the executable exists on disk.
func (i *Installer) Installed() bool {
	info, err := os.Stat(i.ExecutablePath())
	return err == nil && info.Mode().IsRegular()
}

// Uninstall removes the executable so the next EnsureInstalled rebuilds it.
func (i *Installer) Uninstall() error {
	err := os.Remove(i.ExecutablePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing executable: %w", err)
	}
	return nil
}

// EnsureInstalled runs every step in order and stops at the first failure.
// It does not check whether the executable is already present.
func (i *Installer) EnsureInstalled(ctx context.Context) error {
	_, err, shared := i.group.Do(i.settings.Version, func() (any, error) {
		return nil, i.run(ctx)
	})
	if shared {
		i.log.Debug("joined in-flight install", zap.String("version", i.settings.Version))
	}
	return err
}

func (i *Installer) run(ctx context.Context) error {
	start := time.Now()
	i.log.Info("installing fasttext",
		zap.String("version", i.settings.Version),
		zap.String("work_dir", i.settings.WorkDir))

	for idx, step := range i.Steps() {
		result, err := i.shell.Run(ctx, domain.Invocation{Command: step.Command})
		if err != nil {
			return &domain.InstallError{Step: step.Name, Index: idx, Err: err}
		}

		i.log.Debug("install step finished",
			zap.String("step", step.Name),
			zap.String("status", result.Status()),
			zap.Duration("duration", result.Duration))

		if !result.Success() {
			return &domain.InstallError{Step: step.Name, Index: idx, Result: result}
		}
	}

	i.log.Info("fasttext installed",
		zap.String("path", i.ExecutablePath()),
		zap.Duration("duration", time.Since(start)))
	return nil
}

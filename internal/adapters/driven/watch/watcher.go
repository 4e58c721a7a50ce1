// Package watch reports model artifacts appearing in or leaving a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Ensure Watcher implements the interface.
var _ driven.ArtifactWatcher = (*Watcher)(nil)

// changeBuffer is the capacity of the change channel.
const changeBuffer = 32

// Watcher watches one directory (non-recursively) for .bin and .ftz files.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
	log     *zap.Logger
}

// New creates an artifact watcher.
func New(log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{log: log.Named("watch")}
}

// Watch starts watching dir. The returned channel is closed when ctx is
// cancelled or Close is called. Only one directory may be watched at a time.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan domain.ArtifactChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil, fmt.Errorf("%w: watcher already running", domain.ErrInvalidInput)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w.watcher = fw
	w.done = make(chan struct{})
	changes := make(chan domain.ArtifactChange, changeBuffer)

	go w.run(ctx, fw, w.done, changes)

	w.log.Debug("watching directory", zap.String("dir", dir))
	return changes, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fw, done := w.watcher, w.done
	w.watcher, w.done = nil, nil
	w.mu.Unlock()

	if fw == nil {
		return nil
	}
	err := fw.Close()
	<-done
	return err
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}, out chan<- domain.ArtifactChange) {
	defer close(done)
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			change := handleFsEvent(event)
			if change == nil {
				continue
			}
			w.log.Debug("artifact change",
				zap.String("path", change.Path),
				zap.Stringer("type", change.Type))
			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleFsEvent maps a filesystem event to an artifact change.
// Returns nil for events that do not concern model artifacts.
func handleFsEvent(event fsnotify.Event) *domain.ArtifactChange {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return nil
	}
	if _, ok := domain.KindFromPath(event.Name); !ok {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &domain.ArtifactChange{Type: domain.ChangeDeleted, Path: event.Name}
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		return &domain.ArtifactChange{Type: domain.ChangeCreated, Path: event.Name}
	default:
		return nil
	}
}

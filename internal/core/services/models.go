package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driving"
	"github.com/custodia-labs/ftwrap/internal/logger"
)

// Ensure ModelService implements the interface.
var _ driving.ModelService = (*ModelService)(nil)

// verifyWorkers bounds concurrent artifact hashing.
const verifyWorkers = 4

// ModelService manages the model catalog.
type ModelService struct {
	store   driven.ModelStore
	hasher  driven.ArtifactHasher
	watcher driven.ArtifactWatcher
}

// NewModelService creates a new model service.
// The watcher is optional (can be nil); Watch fails without one.
func NewModelService(store driven.ModelStore, hasher driven.ArtifactHasher, watcher driven.ArtifactWatcher) *ModelService {
	return &ModelService{
		store:   store,
		hasher:  hasher,
		watcher: watcher,
	}
}

// Register records an existing artifact under name.
func (s *ModelService) Register(ctx context.Context, path, name string) (*domain.ModelRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	kind, ok := domain.KindFromPath(abs)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a model artifact", domain.ErrUnsupportedType, path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("registering %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a file", domain.ErrInvalidInput, path)
	}

	return s.upsert(ctx, abs, name, kind)
}

// upsert hashes abs and stores it, keeping the identity of an existing
// record for the same path.
func (s *ModelService) upsert(ctx context.Context, abs, name string, kind domain.ModelKind) (*domain.ModelRecord, error) {
	digest, size, err := s.hasher.Hash(abs)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", abs, err)
	}

	record := domain.ModelRecord{
		Path:      abs,
		Kind:      kind,
		Checksum:  digest,
		SizeBytes: size,
	}

	existing, err := s.store.GetByPath(ctx, abs)
	switch {
	case err == nil:
		record.ID = existing.ID
		record.Name = existing.Name
		record.Options = existing.Options
		record.CreatedAt = existing.CreatedAt
		if existing.Kind != "" {
			record.Kind = existing.Kind
		}
	case errors.Is(err, domain.ErrNotFound):
		record.ID = uuid.New().String()
		record.Name, err = s.uniqueName(ctx, baseName(abs))
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("looking up %s: %w", abs, err)
	}
	if name != "" {
		record.Name = name
	}

	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// uniqueName returns base, or base-2, base-3 ... when taken.
func (s *ModelService) uniqueName(ctx context.Context, base string) (string, error) {
	name := base
	for i := 2; ; i++ {
		_, err := s.store.GetByName(ctx, name)
		if errors.Is(err, domain.ErrNotFound) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking name %q: %w", name, err)
		}
		name = base + "-" + strconv.Itoa(i)
	}
}

// baseName strips the directory and artifact suffix.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Get resolves a record by ID, name or path.
func (s *ModelService) Get(ctx context.Context, ref string) (*domain.ModelRecord, error) {
	record, err := s.store.Get(ctx, ref)
	if !errors.Is(err, domain.ErrNotFound) {
		return record, err
	}
	record, err = s.store.GetByName(ctx, ref)
	if !errors.Is(err, domain.ErrNotFound) {
		return record, err
	}
	if abs, absErr := filepath.Abs(ref); absErr == nil {
		return s.store.GetByPath(ctx, abs)
	}
	return nil, domain.ErrNotFound
}

// List returns all records.
func (s *ModelService) List(ctx context.Context) ([]domain.ModelRecord, error) {
	return s.store.List(ctx)
}

// Remove deletes a record, and the artifact too when deleteFile is set.
func (s *ModelService) Remove(ctx context.Context, ref string, deleteFile bool) error {
	record, err := s.Get(ctx, ref)
	if err != nil {
		return err
	}

	if deleteFile {
		if err := os.Remove(record.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing artifact: %w", err)
		}
	}

	return s.store.Delete(ctx, record.ID)
}

// Verify checks every artifact against its recorded checksum.
// Results are in catalog order.
func (s *ModelService) Verify(ctx context.Context) ([]domain.VerifyResult, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.VerifyResult, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyWorkers)

	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := domain.VerifyResult{Record: record, Status: domain.VerifyOK}
			digest, _, err := s.hasher.Hash(record.Path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				result.Status = domain.VerifyMissing
			case err != nil:
				return fmt.Errorf("verifying %s: %w", record.Name, err)
			case digest != record.Checksum:
				result.Status = domain.VerifyMismatch
				result.Actual = digest
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Sync registers unrecorded artifacts in dir and drops records whose
// artifacts are gone.
func (s *ModelService) Sync(ctx context.Context, dir string) (added, removed int, err error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	known := make(map[string]bool, len(records))
	for _, record := range records {
		if _, statErr := os.Stat(record.Path); errors.Is(statErr, os.ErrNotExist) {
			if err := s.store.Delete(ctx, record.ID); err != nil {
				return added, removed, err
			}
			logger.Debug("Dropped %s: %s is gone", record.Name, record.Path)
			removed++
			continue
		}
		known[record.Path] = true
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return added, removed, fmt.Errorf("resolving %s: %w", dir, err)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return added, removed, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return added, removed, err
		}
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(absDir, entry.Name())
		kind, ok := domain.KindFromPath(path)
		if !ok || known[path] {
			continue
		}
		record, err := s.upsert(ctx, path, "", kind)
		if err != nil {
			return added, removed, err
		}
		logger.Debug("Registered %s at %s", record.Name, record.Path)
		added++
	}

	return added, removed, nil
}

// Watch keeps the catalog in step with dir until ctx is done.
// Errors applying a single change are logged and skipped.
func (s *ModelService) Watch(ctx context.Context, dir string, onChange func(domain.ArtifactChange)) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: no artifact watcher configured", domain.ErrInvalidInput)
	}

	changes, err := s.watcher.Watch(ctx, dir)
	if err != nil {
		return err
	}
	defer s.watcher.Close()

	for change := range changes {
		if err := s.apply(ctx, change); err != nil {
			logger.Warn("Applying %s change for %s: %v", change.Type, change.Path, err)
			continue
		}
		if onChange != nil {
			onChange(change)
		}
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func (s *ModelService) apply(ctx context.Context, change domain.ArtifactChange) error {
	abs, err := filepath.Abs(change.Path)
	if err != nil {
		return err
	}

	switch change.Type {
	case domain.ChangeCreated:
		kind, _ := domain.KindFromPath(abs)
		_, err := s.upsert(ctx, abs, "", kind)
		return err
	case domain.ChangeDeleted:
		record, err := s.store.GetByPath(ctx, abs)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return s.store.Delete(ctx, record.ID)
	default:
		return nil
	}
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// Ensure ModelStore implements the interface.
var _ driven.ModelStore = (*ModelStore)(nil)

// ModelStore is an in-memory implementation of driven.ModelStore.
// Name and path uniqueness match the SQLite catalog.
type ModelStore struct {
	mu      sync.RWMutex
	records map[string]domain.ModelRecord
	now     func() time.Time
}

// NewModelStore creates a new in-memory model store.
func NewModelStore() *ModelStore {
	return &ModelStore{
		records: make(map[string]domain.ModelRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Save stores or updates a record.
func (s *ModelStore) Save(_ context.Context, record domain.ModelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.records {
		if id == record.ID {
			continue
		}
		if existing.Name == record.Name || existing.Path == record.Path {
			return fmt.Errorf("%w: model %q or path %q is recorded as %s",
				domain.ErrAlreadyExists, record.Name, record.Path, id)
		}
	}

	now := s.now()
	if prev, ok := s.records[record.ID]; ok {
		record.CreatedAt = prev.CreatedAt
	} else if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Options = copyOptions(record.Options)

	s.records[record.ID] = record
	return nil
}

// Get retrieves a record by ID.
func (s *ModelStore) Get(_ context.Context, id string) (*domain.ModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// GetByName retrieves a record by name.
func (s *ModelStore) GetByName(_ context.Context, name string) (*domain.ModelRecord, error) {
	return s.find(func(r domain.ModelRecord) bool { return r.Name == name })
}

// GetByPath retrieves a record by artifact path.
func (s *ModelStore) GetByPath(_ context.Context, path string) (*domain.ModelRecord, error) {
	return s.find(func(r domain.ModelRecord) bool { return r.Path == path })
}

func (s *ModelStore) find(match func(domain.ModelRecord) bool) (*domain.ModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if match(record) {
			r := record
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a record.
func (s *ModelStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// List returns all records ordered by name.
func (s *ModelStore) List(_ context.Context) ([]domain.ModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ModelRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func copyOptions(opts domain.Options) domain.Options {
	if opts == nil {
		return nil
	}
	out := make(domain.Options, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}

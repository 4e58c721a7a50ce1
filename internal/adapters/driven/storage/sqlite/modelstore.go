package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ftwrap/internal/core/domain"
	"github.com/custodia-labs/ftwrap/internal/core/ports/driven"
)

// modelStore implements driven.ModelStore.
type modelStore struct {
	store *Store
}

var _ driven.ModelStore = (*modelStore)(nil)

const modelColumns = `id, name, path, kind, options, checksum, size_bytes, created_at, updated_at`

// Save stores or updates a record.
func (s *modelStore) Save(ctx context.Context, record domain.ModelRecord) error {
	optionsJSON, err := json.Marshal(record.Options)
	if err != nil {
		return fmt.Errorf("marshalling options: %w", err)
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var clash string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM models WHERE (name = ? OR path = ?) AND id != ? LIMIT 1",
		record.Name, record.Path, record.ID).Scan(&clash)
	switch {
	case err == nil:
		return fmt.Errorf("%w: model %q or path %q is recorded as %s",
			domain.ErrAlreadyExists, record.Name, record.Path, clash)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking model name: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO models (`+modelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			kind = excluded.kind,
			options = excluded.options,
			checksum = excluded.checksum,
			size_bytes = excluded.size_bytes,
			updated_at = excluded.updated_at
	`, record.ID, record.Name, record.Path, string(record.Kind), string(optionsJSON),
		record.Checksum, record.SizeBytes, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	return tx.Commit()
}

// Get retrieves a record by ID.
func (s *modelStore) Get(ctx context.Context, id string) (*domain.ModelRecord, error) {
	return s.getBy(ctx, "id", id)
}

// GetByName retrieves a record by name.
func (s *modelStore) GetByName(ctx context.Context, name string) (*domain.ModelRecord, error) {
	return s.getBy(ctx, "name", name)
}

// GetByPath retrieves a record by artifact path.
func (s *modelStore) GetByPath(ctx context.Context, path string) (*domain.ModelRecord, error) {
	return s.getBy(ctx, "path", path)
}

// getBy looks a record up by one unique column. column is never user input.
func (s *modelStore) getBy(ctx context.Context, column, value string) (*domain.ModelRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+modelColumns+" FROM models WHERE "+column+" = ?", value)

	record, err := scanModel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning model: %w", err)
	}
	return record, nil
}

// Delete removes a record.
func (s *modelStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM models WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting model: %w", err)
	}
	return nil
}

// List returns all records ordered by name.
func (s *modelStore) List(ctx context.Context) ([]domain.ModelRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+modelColumns+" FROM models ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying models: %w", err)
	}
	defer rows.Close()

	var records []domain.ModelRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning model: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating models: %w", err)
	}

	return records, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanModel(row scanner) (*domain.ModelRecord, error) {
	var (
		record      domain.ModelRecord
		kind        string
		optionsJSON string
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)
	if err := row.Scan(&record.ID, &record.Name, &record.Path, &kind, &optionsJSON,
		&record.Checksum, &record.SizeBytes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	record.Kind = domain.ModelKind(kind)
	if optionsJSON != "" && optionsJSON != jsonNull {
		if err := json.Unmarshal([]byte(optionsJSON), &record.Options); err != nil {
			return nil, fmt.Errorf("unmarshaling options: %w", err)
		}
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time
	}

	return &record, nil
}

// jsonNull is the JSON representation of null.
const jsonNull = "null"

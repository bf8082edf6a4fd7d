package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

const createSchemasTable = `
CREATE TABLE IF NOT EXISTS inferred_schemas (
    id          uuid PRIMARY KEY,
    name        text NOT NULL,
    row_count   integer NOT NULL,
    duration_ms bigint NOT NULL DEFAULT 0,
    fields      jsonb NOT NULL,
    created_at  timestamptz NOT NULL DEFAULT now()
)`

// PgStore persists results in PostgreSQL. Fields are stored as JSONB in
// the same shape the HTTP API returns.
type PgStore struct {
	db DBTX
}

// NewPgStore creates a PgStore. Call EnsureSchema once before use.
func NewPgStore(db DBTX) *PgStore {
	return &PgStore{db: db}
}

// EnsureSchema creates the results table if it does not exist.
func (s *PgStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSchemasTable); err != nil {
		return fmt.Errorf("create inferred_schemas: %w", err)
	}
	return nil
}

func (s *PgStore) Save(ctx context.Context, res *SchemaResult) error {
	fields, err := json.Marshal(res.Fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO inferred_schemas (id, name, row_count, duration_ms, fields, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, row_count = EXCLUDED.row_count,
		     duration_ms = EXCLUDED.duration_ms, fields = EXCLUDED.fields`,
		pgtype.UUID{Bytes: res.ID, Valid: true},
		res.Name,
		int32(res.RowCount),
		res.DurationMs,
		fields,
		pgtype.Timestamptz{Time: res.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("save schema %s: %w", res.ID, err)
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, id uuid.UUID) (*SchemaResult, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, name, row_count, duration_ms, fields, created_at
		 FROM inferred_schemas WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true},
	)

	res, err := scanSchemaResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get schema %s: %w", id, err)
	}
	return res, nil
}

func (s *PgStore) List(ctx context.Context, limit int) ([]*SchemaResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, name, row_count, duration_ms, fields, created_at
		 FROM inferred_schemas ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*SchemaResult, error) {
		return scanSchemaResult(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	return results, nil
}

func scanSchemaResult(row pgx.Row) (*SchemaResult, error) {
	var (
		id        pgtype.UUID
		name      string
		rowCount  int32
		duration  int64
		rawFields []byte
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &rowCount, &duration, &rawFields, &createdAt); err != nil {
		return nil, err
	}

	var fields []schema.Field
	if err := json.Unmarshal(rawFields, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}

	return &SchemaResult{
		ID:         uuid.UUID(id.Bytes),
		Name:       name,
		Fields:     fields,
		RowCount:   int(rowCount),
		DurationMs: duration,
		CreatedAt:  createdAt.Time.In(time.UTC),
	}, nil
}

package core

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/csvschema/internal/infer"
	"github.com/JonMunkholm/csvschema/internal/logging"
	"github.com/JonMunkholm/csvschema/internal/schema"
)

// DefaultInferTimeout bounds a single inference request.
const DefaultInferTimeout = 5 * time.Minute

// DefaultPreviewRows is the number of rows Preview converts when the caller
// does not ask for a specific count.
const DefaultPreviewRows = 20

// ServiceConfig holds the tunables for a Service. Zero values select defaults.
type ServiceConfig struct {
	MaxConcurrent int           // Inference requests running at once
	MaxWait       time.Duration // How long a request waits for a slot
	Workers       int           // Columns classified in parallel per request
	Timeout       time.Duration // Per-request deadline
}

// Service infers schemas for CSV streams and keeps the results.
type Service struct {
	engine    *infer.Engine
	converter *Converter
	store     Store
	limiter   *Limiter
	workers   int
	timeout   time.Duration
}

// NewService creates a Service. A nil store selects a MemoryStore.
func NewService(engine *infer.Engine, store Store, cfg ServiceConfig) *Service {
	if store == nil {
		store = NewMemoryStore()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultInferTimeout
	}

	return &Service{
		engine:    engine,
		converter: NewConverter(engine),
		store:     store,
		limiter:   NewLimiter(cfg.MaxConcurrent, cfg.MaxWait),
		workers:   workers,
		timeout:   timeout,
	}
}

// InferCSV reads r, infers a field type per column and saves the result.
func (s *Service) InferCSV(ctx context.Context, req InferRequest, r io.Reader) (*SchemaResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	id := uuid.New()
	logger := logging.WithFields(ctx, "schema_id", id, "name", req.Name)

	columns, rowCount, err := ReadColumns(r, req.Options)
	if err != nil {
		logger.Warn("read failed", "error", err)
		return nil, err
	}

	fields, err := s.InferColumns(ctx, columns)
	if err != nil {
		logger.Warn("inference aborted", "error", err)
		return nil, err
	}

	res := &SchemaResult{
		ID:         id,
		Name:       req.Name,
		Fields:     fields,
		RowCount:   rowCount,
		CreatedAt:  start.UTC(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err := s.store.Save(ctx, res); err != nil {
		logger.Error("save failed", "error", err)
		return nil, err
	}

	logger.Info("schema inferred",
		"columns", len(fields),
		"rows", rowCount,
		"duration_ms", res.DurationMs,
	)
	return res, nil
}

// InferColumns classifies columns on up to Workers goroutines. The result
// has one Field per column in input order. It returns ctx.Err() if the
// context ends before every column is classified.
func (s *Service) InferColumns(ctx context.Context, columns []schema.Column) ([]schema.Field, error) {
	fields := make([]schema.Field, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, col := range columns {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fields[i] = schema.Field{Name: col.Name, Type: s.engine.Infer(col.Values)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

// Get returns a saved result.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SchemaResult, error) {
	return s.store.Get(ctx, id)
}

// List returns up to limit saved results, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]*SchemaResult, error) {
	return s.store.List(ctx, limit)
}

// DDL renders a CREATE TABLE statement for a saved result. An empty table
// name falls back to the result's name.
func (s *Service) DDL(ctx context.Context, id uuid.UUID, table string) (string, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if table == "" {
		table = TableName(res.Name)
	}
	return CreateTableSQL(table, res.Fields)
}

// Preview infers a schema for r without saving it and converts the first
// rows under that schema.
func (s *Service) Preview(ctx context.Context, req InferRequest, r io.Reader, rows int) (*PreviewResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	columns, _, err := ReadColumns(r, req.Options)
	if err != nil {
		return nil, err
	}
	fields, err := s.InferColumns(ctx, columns)
	if err != nil {
		return nil, err
	}

	firstLine := req.Options.SkipRows + 1
	if req.Options.HasHeader {
		firstLine++
	}
	return s.converter.Preview(fields, columns, rows, firstLine), nil
}

// LimiterStatus reports current slot usage.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForDrain blocks until no inference request is running or ctx ends.
func (s *Service) WaitForDrain(ctx context.Context) error {
	if err := s.limiter.WaitForDrain(ctx); err != nil {
		return fmt.Errorf("wait for in-flight requests: %w", err)
	}
	return nil
}

package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/csvschema/internal/schema"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// SchemaResult is one completed inference run.
type SchemaResult struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Fields     []schema.Field `json:"fields"`
	RowCount   int            `json:"rowCount"`
	CreatedAt  time.Time      `json:"createdAt"`
	DurationMs int64          `json:"durationMs"`
}

// InferRequest describes a CSV stream to infer a schema for.
type InferRequest struct {
	Name    string // Display name, usually the file name
	Options ReadOptions
}

// PreviewCell is one converted value. Value holds the normalized text form
// of the typed value; Null is set for missing values.
type PreviewCell struct {
	Value string `json:"value,omitempty"`
	Null  bool   `json:"null,omitempty"`
	Error string `json:"error,omitempty"`
}

// PreviewRow is a data row converted under the inferred schema.
type PreviewRow struct {
	LineNumber int           `json:"lineNumber"`
	Cells      []PreviewCell `json:"cells"`
}

// PreviewResult shows how the first rows of a file load under its schema.
type PreviewResult struct {
	Fields     []schema.Field `json:"fields"`
	Rows       []PreviewRow   `json:"rows"`
	ErrorCount int            `json:"errorCount"`
}

package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/csvschema/internal/core"
)

var (
	errInvalidParam = errors.New("invalid query parameter")
	errInvalidID    = errors.New("invalid schema id")
)

// multipartMemory is how much of a multipart upload is held in memory
// before spilling to temporary files.
const multipartMemory = 32 << 20

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string             `json:"status"`
	Limiter core.LimiterStatus `json:"limiter"`
}

// handleHealth reports liveness and inference slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Limiter: s.service.LimiterStatus(),
	})
}

// handleInfer infers and saves a schema for the uploaded CSV.
func (s *Server) handleInfer(w http.ResponseWriter, r *http.Request) {
	req, body, err := s.inferRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	res, err := s.service.InferCSV(r.Context(), req, body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/schemas/"+res.ID.String())
	writeJSON(w, http.StatusCreated, res)
}

// handlePreview infers a schema without saving it and converts the first rows.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rows, err := intParam(r, "rows", core.DefaultPreviewRows)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	req, body, err := s.inferRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer body.Close()

	res, err := s.service.Preview(r.Context(), req, body, rows)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleListSchemas returns saved schemas, newest first.
func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", core.DefaultListLimit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	results, err := s.service.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if results == nil {
		results = []*core.SchemaResult{}
	}

	writeJSON(w, http.StatusOK, results)
}

// handleGetSchema returns one saved schema.
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	id, err := schemaID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleSchemaDDL renders CREATE TABLE for a saved schema as plain text.
func (s *Server) handleSchemaDDL(w http.ResponseWriter, r *http.Request) {
	id, err := schemaID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ddl, err := s.service.DDL(r.Context(), id, r.URL.Query().Get("table"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, ddl)
}

// inferRequest extracts the CSV body and read options from r. The body is
// either a multipart form with a "file" part or the raw request body.
// The caller must close the returned body.
func (s *Server) inferRequest(w http.ResponseWriter, r *http.Request) (core.InferRequest, io.ReadCloser, error) {
	opts, err := readOptions(r)
	if err != nil {
		return core.InferRequest{}, nil, err
	}
	req := core.InferRequest{Name: r.URL.Query().Get("name"), Options: opts}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if r.ContentLength == 0 {
			return core.InferRequest{}, nil, core.ErrNoFile
		}
		if req.Name == "" {
			req.Name = "upload.csv"
		}
		return req, r.Body, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return core.InferRequest{}, nil, fmt.Errorf("invalid csv upload form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return core.InferRequest{}, nil, core.ErrNoFile
	}
	if req.Name == "" {
		req.Name = header.Filename
	}
	return req, file, nil
}

// readOptions parses header, delimiter, skip and maxRows query parameters.
func readOptions(r *http.Request) (core.ReadOptions, error) {
	q := r.URL.Query()
	opts := core.DefaultReadOptions()

	if v := q.Get("header"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w %q: %v", errInvalidParam, "header", err)
		}
		opts.HasHeader = b
	}

	if v := q.Get("delimiter"); v != "" {
		comma, err := parseDelimiter(v)
		if err != nil {
			return opts, err
		}
		opts.Comma = comma
	}

	skip, err := intParam(r, "skip", 0)
	if err != nil {
		return opts, err
	}
	opts.SkipRows = skip

	maxRows, err := intParam(r, "maxRows", 0)
	if err != nil {
		return opts, err
	}
	opts.MaxRows = maxRows

	return opts, nil
}

// parseDelimiter wraps core.ParseDelimiter as a query parameter error.
func parseDelimiter(v string) (rune, error) {
	c, err := core.ParseDelimiter(v)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", errInvalidParam, "delimiter", err)
	}
	return c, nil
}

// intParam parses a non-negative integer query parameter with a default value.
func intParam(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w %q: %q is not a non-negative integer", errInvalidParam, name, val)
	}
	return i, nil
}

func schemaID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errInvalidID, err)
	}
	return id, nil
}

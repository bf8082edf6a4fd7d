// Package core provides the schema inference workflow around the engine.
//
// This package contains all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Reader: [ReadColumns] turns a CSV stream into named columns, handling
//     byte order marks, invalid UTF-8, ragged rows and missing headers.
//   - Service: The main entry point ([Service.InferCSV], [Service.Preview],
//     [Service.DDL]). Requests run under a bounded [Limiter] and columns are
//     classified in parallel.
//   - Store: Results are kept in a [MemoryStore] or in PostgreSQL via
//     [PgStore].
//   - Conversion: [Converter] re-parses raw values under an inferred type into
//     pgtype values, the contract a downstream loader relies on.
//
// # Inference Flow
//
//  1. Client calls [Service.InferCSV] with an io.Reader
//  2. Service acquires a limiter slot, waiting up to the configured time
//  3. [ReadColumns] decodes the stream into columns
//  4. Each column is classified by the infer engine on a worker pool
//  5. The result is assigned an ID and saved
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE006: File errors (size, format, empty input)
//   - VAL001-VAL003: Value conversion errors during preview
//   - SCH001-SCH003: Schema lookup and DDL errors
//   - DB004-DB007: Database errors
//   - REQ001-REQ004, RATE001: Request errors (busy, cancelled, timeout)
package core

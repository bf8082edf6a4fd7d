package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/csvschema/internal/infer"
)

// problems collects validation failures so they can be reported together.
type problems []string

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var p problems

	db := c.Database
	p.check(db.MaxConns > 0, "DB_MAX_CONNS must be positive")
	p.check(db.MinConns >= 0, "DB_MIN_CONNS must be non-negative")
	p.check(db.MaxConns >= db.MinConns, "DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", db.MaxConns, db.MinConns)

	srv := c.Server
	p.check(srv.Port > 0 && srv.Port <= 65535, "SERVER_PORT (%d) must be 1-65535", srv.Port)
	p.check(srv.ReadTimeout >= 0, "SERVER_READ_TIMEOUT must be non-negative")
	p.check(srv.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	p.check(srv.RequestTimeout > 0, "SERVER_REQUEST_TIMEOUT must be positive")

	up := c.Upload
	p.check(up.MaxFileSize > 0, "UPLOAD_MAX_FILE_SIZE must be positive")
	p.check(up.MaxConcurrent > 0, "UPLOAD_MAX_CONCURRENT must be positive")
	p.check(up.MaxWaitTime > 0, "UPLOAD_MAX_WAIT_TIME must be positive")
	p.check(up.Timeout > 0, "UPLOAD_TIMEOUT must be positive")

	inf := c.Inference
	p.check(inf.TextThreshold >= 0, "INFER_TEXT_THRESHOLD must be non-negative (0 uses the default)")
	p.check(inf.Workers >= 0, "INFER_WORKERS must be non-negative (0 uses one per CPU)")
	p.check(len(inf.TrueTokens) > 0, "INFER_TRUE_TOKENS must not be empty")
	p.check(len(inf.FalseTokens) > 0, "INFER_FALSE_TOKENS must not be empty")

	p.check(!c.Rate.Enabled || c.Rate.RequestsPerMinute > 0,
		"RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	p.check(!c.Security.RequireAPIKey || len(c.Security.APIKeys) > 0,
		"REQUIRE_API_KEY is true but API_KEYS is empty")

	level := strings.ToLower(c.Logging.Level)
	p.check(slices.Contains([]string{"debug", "info", "warn", "error"}, level),
		"LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level)
	format := strings.ToLower(c.Logging.Format)
	p.check(slices.Contains([]string{"text", "json"}, format),
		"LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format)

	if len(p) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(p, "\n  - "))
	}
	return nil
}

// EngineConfig builds the inference engine configuration, loading the
// format catalog file when one is configured.
func (c *Config) EngineConfig() (infer.Config, error) {
	ec := infer.DefaultConfig()
	ec.MissingIndicators = c.Inference.MissingIndicators
	ec.TrueTokens = c.Inference.TrueTokens
	ec.FalseTokens = c.Inference.FalseTokens
	ec.TextThreshold = c.Inference.TextThreshold

	if path := c.Inference.FormatCatalog; path != "" {
		catalogs, err := infer.LoadCatalogs(path)
		if err != nil {
			return infer.Config{}, fmt.Errorf("INFER_FORMAT_CATALOG: %w", err)
		}
		ec.Catalogs = catalogs
	}

	if err := ec.Validate(); err != nil {
		return infer.Config{}, err
	}
	return ec, nil
}

// String renders the config for logs with the database URL masked.
func (c *Config) String() string {
	dbURL := "[NONE]"
	if c.Database.URL != "" {
		dbURL = "[MASKED]"
	}
	return fmt.Sprintf("Config{Server: {Addr: %s}, Database: {URL: %s, Conns: %d-%d}, "+
		"Upload: {MaxFileSize: %d, MaxConcurrent: %d}, "+
		"Inference: {TextThreshold: %d, Workers: %d, FormatCatalog: %q}, "+
		"Rate: {Enabled: %v, PerMinute: %d}, Auth: %v, Logging: {%s/%s}}",
		c.Server.Addr(), dbURL, c.Database.MinConns, c.Database.MaxConns,
		c.Upload.MaxFileSize, c.Upload.MaxConcurrent,
		c.Inference.TextThreshold, c.Inference.Workers, c.Inference.FormatCatalog,
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Security.RequireAPIKey,
		c.Logging.Level, c.Logging.Format)
}

// Package config provides environment-driven configuration for cinedex.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL    Secret
	Port           string
	ListenHost     string
	MetricsPort    string
	CORSOrigins    []string
	LogLevel       string
	DBMaxConns     int
	DataDir        string
	MinVotes       int
	BatchSize      int
	PushgatewayURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from an optional YAML file and the environment.
// File keys are the lower-case variable names (database_url, data_dir, ...).
// Environment variables take precedence over file values.
func LoadFile(path string) (*Config, error) {
	src := source{file: map[string]string{}}

	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}

		src.file = file
	}

	cfg := &Config{
		DatabaseURL:    Secret(src.get("DATABASE_URL", "")),
		Port:           src.get("PORT", "3030"),
		ListenHost:     src.get("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:    src.get("METRICS_PORT", "9091"),
		LogLevel:       src.get("LOG_LEVEL", "info"),
		DataDir:        src.get("DATA_DIR", "./data"),
		PushgatewayURL: src.get("PUSHGATEWAY_URL", ""),
	}

	dbMaxConns, err := strconv.Atoi(src.get("DB_MAX_CONNS", "10"))
	if err != nil || dbMaxConns < 2 || dbMaxConns > 200 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be an integer between 2 and 200")
	}
	cfg.DBMaxConns = dbMaxConns

	minVotes, err := strconv.Atoi(src.get("INGEST_MIN_VOTES", "100"))
	if err != nil || minVotes < 1 {
		return nil, fmt.Errorf("INGEST_MIN_VOTES must be a positive integer")
	}
	cfg.MinVotes = minVotes

	batchSize, err := strconv.Atoi(src.get("INGEST_BATCH_SIZE", "1000"))
	if err != nil || batchSize < 1 || batchSize > 5000 {
		return nil, fmt.Errorf("INGEST_BATCH_SIZE must be an integer between 1 and 5000")
	}
	cfg.BatchSize = batchSize

	origins := src.get("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

// source resolves a setting from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	if v, ok := s.file[key]; ok && v != "" {
		return v
	}

	return fallback
}

// readFile parses a flat YAML mapping into upper-cased variable names.
// Sequences are joined with commas so cors_origins may be written as a list.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))

	for k, v := range raw {
		key := strings.ToUpper(k)

		switch val := v.(type) {
		case nil:
			continue
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			out[key] = strings.Join(parts, ",")
		case map[string]any:
			return nil, fmt.Errorf("config file key %q must be a scalar or list", k)
		default:
			out[key] = fmt.Sprint(val)
		}
	}

	return out, nil
}

package platform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk workspace configuration (notepad.yaml).
type Config struct {
	Adapter       string `yaml:"adapter"`
	URI           string `yaml:"uri,omitempty"`
	Key           string `yaml:"key,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
}

// DefaultConfig is the configuration `notepad init` writes.
func DefaultConfig() Config {
	return Config{
		Adapter:  AdapterFS,
		URI:      DefaultURI(AdapterFS),
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file. Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the adapter name and log level.
func (c Config) Validate() error {
	if !slices.Contains(Adapters, c.Adapter) {
		return fmt.Errorf("unknown adapter %q (want one of %s)", c.Adapter, strings.Join(Adapters, ", "))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Default locations per adapter, used when a config names no URI.
const (
	DefaultSQLiteURI = "notepad.db"
	DefaultRedisURI  = "localhost:6379"
)

// DefaultURI returns the location an adapter uses when none is configured.
// The memory adapter has none.
func DefaultURI(adapter string) string {
	switch adapter {
	case AdapterFS:
		return SystemDir
	case AdapterSQLite:
		return DefaultSQLiteURI
	case AdapterRedis:
		return DefaultRedisURI
	}
	return ""
}

// ResolveURI returns the adapter location, falling back to DefaultURI, with a
// relative fs or sqlite path made relative to root.
func (c Config) ResolveURI(root string) string {
	uri := c.URI
	if uri == "" {
		uri = DefaultURI(c.Adapter)
	}
	switch c.Adapter {
	case AdapterFS, AdapterSQLite:
		if uri != "" && uri != ":memory:" && !filepath.IsAbs(uri) {
			return filepath.Join(root, uri)
		}
	}
	return uri
}

// WithAdapter returns c switched to adapter. The URI is kept only when the
// adapter does not change, since a location is meaningless to another adapter.
func (c Config) WithAdapter(adapter string) Config {
	if adapter != c.Adapter {
		c.Adapter = adapter
		c.URI = ""
	}
	return c
}

// Options converts the config into store options.
func (c Config) Options() []Option {
	return []Option{
		WithAdapter(c.Adapter),
		WithKey(c.Key),
		WithRedisDB(c.RedisDB),
		WithRedisPassword(c.RedisPassword),
	}
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

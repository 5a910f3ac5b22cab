// Package fs stores values as files in a directory, one file per key.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

// FileExt is appended to a key to form its file name.
const FileExt = ".json"

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher failures. Optional.
}

// Storage implements core.Storage on top of a directory.
// Writes go through a temp file and a rename so a reader never sees a torn value.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// NewStorage creates a filesystem storage rooted at config.Path.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the storage directory exists and clears temp files left
// by an interrupted write.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	removed, err := sweepTempFiles(s.Path)
	if err != nil {
		return fmt.Errorf("failed to clean storage directory: %w", err)
	}
	if removed > 0 {
		s.config.Logger.Warn("removed leftovers of interrupted writes", "path", s.Path, "count", removed)
	}
	return nil
}

// Get reads the file for key. A missing file is reported as not found.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	s.config.Logger.Debug("read value", "key", key, "bytes", len(data))
	return string(data), true, nil
}

// Set atomically replaces the file for key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	if err := replaceFile(path, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.recordWrite()
	s.config.Logger.Debug("wrote value", "key", key, "bytes", len(value))
	return nil
}

// pathFor maps a key to its file. Keys must be plain file names.
func (s *Storage) pathFor(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)

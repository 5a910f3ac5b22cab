package notepad

import (
	"context"
	"log/slog"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/core"
)

// Version of the library and CLI.
const Version = "0.4.0"

// --- Types ---

// Note is a public alias for the domain record.
type Note = core.Note

// Input is a public alias for the fields of a new note.
type Input = core.Input

// Patch is a public alias for a partial update.
type Patch = core.Patch

// Draft is a public alias for an editor working copy.
type Draft = core.Draft

// Store is a public alias for the note collection manager.
type Store = core.NoteStore

// Config is the workspace configuration file (notepad.yaml).
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring a store.
type Option = platform.Option

// WithAdapter selects the storage adapter ("fs", "memory", "sqlite", "redis").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorage injects a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithKey sets the key the collection is stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReporter sets the event and error collaborator.
func WithReporter(r core.Reporter) Option {
	return platform.WithReporter(r)
}

// WithClock overrides the time source.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(g core.IDGenerator) Option {
	return platform.WithIDGenerator(g)
}

// WithMustExist requires the fs directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithRedisDB selects the Redis logical database.
func WithRedisDB(db int) Option {
	return platform.WithRedisDB(db)
}

// --- Factory ---

// New opens the storage named by the options at uri and returns a loaded store.
func New(ctx context.Context, uri string, opts ...Option) (*core.NoteStore, error) {
	return platform.New(ctx, uri, opts...)
}

// NewDraft returns an empty editor draft.
func NewDraft() *core.Draft {
	return core.NewDraft()
}

// DraftFrom returns a draft seeded from an existing note.
func DraftFrom(n core.Note) *core.Draft {
	return core.DraftFrom(n)
}

// --- Workspace ---

// LoadConfig reads a notepad.yaml file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// DefaultConfig returns the configuration a fresh workspace starts with.
func DefaultConfig() Config {
	return platform.DefaultConfig()
}

// FindRoot looks upwards from startDir for a workspace root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/adapters/redis"
	"github.com/aretw0/notepad/pkg/adapters/sqlite"
	"github.com/aretw0/notepad/pkg/analytics"
	"github.com/aretw0/notepad/pkg/core"
)

// Adapter names.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
	AdapterSQLite = "sqlite"
	AdapterRedis  = "redis"
)

// Adapters lists the adapter names New accepts.
var Adapters = []string{AdapterFS, AdapterMemory, AdapterSQLite, AdapterRedis}

// New opens the configured storage and returns a loaded note store.
//
//	store, err := platform.New(ctx, "./.notepad", platform.WithAdapter("fs"))
//
// The URI argument is adapter-specific: a directory for "fs", a database file for
// "sqlite", a host:port for "redis". "memory" ignores it.
func New(ctx context.Context, uri string, opts ...Option) (*core.NoteStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.reporter == nil {
		o.reporter = analytics.NewLogReporter(o.logger)
	}

	storage := o.storage
	if storage == nil {
		var err error
		storage, err = openStorage(ctx, o.adapter, uri, o)
		if err != nil {
			return nil, err
		}
	}

	store := core.NewNoteStore(storage,
		core.WithKey(o.key),
		core.WithLogger(o.logger),
		core.WithReporter(o.reporter),
		core.WithClock(o.clock),
		core.WithIDGenerator(o.ids),
	)
	store.Load(ctx)

	o.logger.Debug("note store ready", "adapter", o.adapter, "uri", uri, "notes", store.Len())
	return store, nil
}

// openStorage builds the named adapter.
func openStorage(ctx context.Context, adapter, uri string, o *options) (core.Storage, error) {
	switch adapter {
	case AdapterFS:
		if uri == "" {
			return nil, fmt.Errorf("fs adapter needs a directory")
		}
		s := fs.NewStorage(fs.Config{
			Path:      uri,
			MustExist: o.mustExist,
			Logger:    o.logger,
		})
		if err := s.Initialize(ctx); err != nil {
			return nil, err
		}
		return s, nil

	case AdapterMemory:
		return memory.NewStorage(), nil

	case AdapterSQLite:
		if uri == "" {
			return nil, fmt.Errorf("sqlite adapter needs a database path")
		}
		s, err := sqlite.Open(ctx, uri, o.logger)
		if err != nil {
			return nil, err
		}
		return s, nil

	case AdapterRedis:
		if uri == "" {
			return nil, fmt.Errorf("redis adapter needs an address")
		}
		s, err := redis.Open(ctx, redis.Config{
			Addr:     uri,
			Password: o.redisPassword,
			DB:       o.redisDB,
			Logger:   o.logger,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", core.ErrUnknownAdapter, adapter)
}

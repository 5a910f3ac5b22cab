package platform

import (
	"log/slog"

	"github.com/aretw0/notepad/pkg/core"
)

// options holds the internal configuration for a note store.
type options struct {
	adapter       string
	storage       core.Storage
	key           string
	logger        *slog.Logger
	reporter      core.Reporter
	clock         core.Clock
	ids           core.IDGenerator
	mustExist     bool
	redisDB       int
	redisPassword string
}

// Option defines a functional option for configuring a note store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		key:     core.DefaultKey,
	}
}

// WithAdapter selects the storage adapter by name ("fs", "memory", "sqlite", "redis").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithStorage injects a ready storage (e.g. a mock). The adapter name and URI are then ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithKey sets the key the collection is stored under.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReporter sets the event and error collaborator.
// Without one, reports are written to the logger.
func WithReporter(r core.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithClock overrides the time source.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(g core.IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithMustExist makes the fs adapter fail when its directory is missing
// instead of creating it.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithRedisDB selects the Redis logical database.
func WithRedisDB(db int) Option {
	return func(o *options) {
		o.redisDB = db
	}
}

// WithRedisPassword sets the Redis password.
func WithRedisPassword(password string) Option {
	return func(o *options) {
		o.redisPassword = password
	}
}

package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultKey is the storage key the whole note collection lives under.
const DefaultKey = "notepad-pro-notes"

// Storage defines the contract for the durable key-value medium.
// The collection is always read and written as a whole under one key.
type Storage interface {
	// Get returns the value stored under key. found is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// EventType represents the type of change observed on a key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change to a stored key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Watchable is implemented by storages that can report changes made outside the process.
type Watchable interface {
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// IDGenerator produces a globally unique id on each call.
type IDGenerator interface {
	NewID() string
}

// Clock produces the current time.
type Clock interface {
	Now() time.Time
}

// Reporter receives events and errors. Calls are fire-and-forget.
type Reporter interface {
	Track(event string, props map[string]any)
	TrackError(err error, props map[string]any)
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SystemClock reads the wall clock in UTC at millisecond precision,
// the resolution of the stored timestamps.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// IDFunc adapts a plain function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type nopReporter struct{}

func (nopReporter) Track(string, map[string]any)     {}
func (nopReporter) TrackError(error, map[string]any) {}

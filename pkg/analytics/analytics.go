// Package analytics provides core.Reporter implementations.
package analytics

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/aretw0/notepad/pkg/core"
)

// LogReporter writes reporter calls as structured log records.
// Events are logged at Debug, errors at Error.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter writing to logger (slog.Default when nil).
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger.With("component", "analytics")}
}

func (r *LogReporter) Track(event string, props map[string]any) {
	r.logger.Debug("event", append([]any{"event", event}, attrs(props)...)...)
}

func (r *LogReporter) TrackError(err error, props map[string]any) {
	r.logger.Error("error", append([]any{"error", err}, attrs(props)...)...)
}

// attrs flattens props into sorted key/value pairs for stable output.
func attrs(props map[string]any) []any {
	keys := slices.Sorted(maps.Keys(props))
	out := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, props[k])
	}
	return out
}

type nop struct{}

func (nop) Track(string, map[string]any)     {}
func (nop) TrackError(error, map[string]any) {}

// Nop discards everything.
var Nop core.Reporter = nop{}

// Multi fans every call out to each reporter in turn.
func Multi(reporters ...core.Reporter) core.Reporter {
	return multi(reporters)
}

type multi []core.Reporter

func (m multi) Track(event string, props map[string]any) {
	for _, r := range m {
		r.Track(event, props)
	}
}

func (m multi) TrackError(err error, props map[string]any) {
	for _, r := range m {
		r.TrackError(err, props)
	}
}

var _ core.Reporter = (*LogReporter)(nil)

// Package notepad is the Composition Root for the notepad application.
//
// It connects the note domain (pkg/core) with the storage adapters
// (pkg/adapters/...) using the Hexagonal Architecture pattern.
//
// The domain centres on a NoteStore: an ordered, newest-first collection of
// notes held in memory and written back, whole, to a key-value storage after
// every change. Memory is the source of truth; storage failures are reported
// to a Reporter and never surface as errors from store operations.
//
// Adapters:
//
//   - fs: one JSON file per key, atomic writes, change watching (default).
//   - sqlite: a single key-value table.
//   - redis: plain string keys.
//   - memory: process-local, for tests and throwaway sessions.
//
// Usage:
//
//	store, err := notepad.New(ctx, "./.notepad",
//		notepad.WithAdapter("fs"),
//		notepad.WithLogger(logger),
//	)
//
//	note := store.Create(ctx, notepad.Input{Title: "Groceries", Tags: []string{"home"}})
//	hits := store.Search("groceries")
package notepad

package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Ready            bool   `json:"ready"`
	NoteCount        int    `json:"note_count"`
	StorageKey       string `json:"storage_key"`
	StorageType      string `json:"storage_type"`
	LastPersistError string `json:"last_persist_error,omitempty"`
	Storage          any    `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *NoteStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	storageType := "unknown"
	if s.storage != nil {
		storageType = "storage"
		if comp, ok := s.storage.(introspection.Component); ok {
			storageType = comp.ComponentType()
		}
	}

	state := StoreState{
		Ready:       s.ready,
		NoteCount:   len(s.notes),
		StorageKey:  s.key,
		StorageType: storageType,
	}
	if intro, ok := s.storage.(introspection.Introspectable); ok {
		state.Storage = intro.State()
	}
	if s.lastPersistErr != nil {
		state.LastPersistError = s.lastPersistErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *NoteStore) ComponentType() string {
	return "note-store"
}

var _ introspection.Introspectable = (*NoteStore)(nil)
var _ introspection.Component = (*NoteStore)(nil)

package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Reporter contexts for storage failures.
const (
	ContextLoading = "loading_notes"
	ContextSaving  = "saving_notes"
)

// NoteStore owns the canonical, ordered note collection and keeps the durable
// copy in step with it. The in-memory list is the source of truth: a failed
// write is reported, never rolled back.
type NoteStore struct {
	mu sync.RWMutex

	notes []Note
	ready bool

	storage  Storage
	key      string
	ids      IDGenerator
	clock    Clock
	reporter Reporter
	logger   *slog.Logger

	lastPersistErr error
}

// StoreOption configures a NoteStore.
type StoreOption func(*NoteStore)

// WithKey sets the storage key. Defaults to DefaultKey.
func WithKey(key string) StoreOption {
	return func(s *NoteStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator sets the id source. Defaults to UUIDGenerator.
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *NoteStore) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(c Clock) StoreOption {
	return func(s *NoteStore) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithReporter sets the event and error collaborator.
func WithReporter(r Reporter) StoreOption {
	return func(s *NoteStore) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *NoteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewNoteStore creates an empty, not yet ready store over storage.
func NewNoteStore(storage Storage, opts ...StoreOption) *NoteStore {
	s := &NoteStore{
		notes:    []Note{},
		storage:  storage,
		key:      DefaultKey,
		ids:      UUIDGenerator{},
		clock:    SystemClock{},
		reporter: nopReporter{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the collection from storage. It runs once; later calls do nothing.
// A missing blob yields an empty collection, an unreadable one is reported and
// also yields an empty collection. Invalid records are reported and left out.
// The store is ready afterwards in every case.
func (s *NoteStore) Load(ctx context.Context) {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return
	}
	count, err := s.load(ctx)
	s.ready = true
	s.mu.Unlock()

	if err != nil {
		s.reporter.TrackError(err, map[string]any{"context": ContextLoading})
	}
	if count >= 0 {
		s.reporter.Track("notes_loaded", map[string]any{"count": count})
	}
}

// load fills s.notes and returns the loaded count, or -1 when nothing was
// loaded. Must be called with s.mu held.
func (s *NoteStore) load(ctx context.Context) (int, error) {
	blob, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to read notes", "key", s.key, "error", err)
		return -1, err
	}
	if !found {
		s.logger.Debug("no stored notes", "key", s.key)
		return -1, nil
	}

	notes, err := DecodeNotes(blob)
	var skipped *SkippedRecordsError
	switch {
	case errors.As(err, &skipped):
		s.logger.Warn("skipped invalid notes", "key", s.key, "count", len(skipped.Errs), "error", err)
	case err != nil:
		s.logger.Error("failed to decode notes", "key", s.key, "error", err)
		return -1, err
	}

	s.notes = notes
	s.logger.Debug("notes loaded", "key", s.key, "count", len(notes))
	return len(notes), err
}

// Ready reports whether the initial load has completed.
func (s *NoteStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Notes returns a snapshot of the collection, newest first.
func (s *NoteStore) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.notes)
}

// Len returns the number of notes.
func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Create adds a note at the head of the collection.
// The title is trimmed and falls back to UntitledNote; the content is trimmed.
func (s *NoteStore) Create(ctx context.Context, in Input) Note {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = UntitledNote
	}

	s.mu.Lock()
	now := s.now()
	n := Note{
		ID:        s.newID(),
		Title:     title,
		Content:   strings.TrimSpace(in.Content),
		Tags:      cloneTags(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	notes := make([]Note, 0, len(s.notes)+1)
	notes = append(notes, n)
	s.notes = append(notes, s.notes...)
	err := s.persist(ctx)
	s.mu.Unlock()
	s.reportSave(err)

	s.reporter.Track("note_created", map[string]any{
		"title_length":   len(n.Title),
		"content_length": len(n.Content),
		"has_tags":       len(n.Tags) > 0,
	})
	return n.clone()
}

// now reads the clock at the precision timestamps are stored with, so the
// in-memory copy equals what a reload returns.
func (s *NoteStore) now() time.Time {
	return normalizeTime(s.clock.Now())
}

// newID draws ids until one is unused. Must be called with s.mu held.
func (s *NoteStore) newID() string {
	for {
		id := s.ids.NewID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// Update merges patch into the note with the given id, keeping its position.
// It returns false, with no effect, when no such note exists.
func (s *NoteStore) Update(ctx context.Context, id string, patch Patch) (Note, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Note{}, false
	}

	n := patch.apply(s.notes[i])
	n.UpdatedAt = s.now()
	if n.UpdatedAt.Before(n.CreatedAt) {
		n.UpdatedAt = n.CreatedAt
	}
	s.notes[i] = n
	err := s.persist(ctx)
	s.mu.Unlock()
	s.reportSave(err)

	s.reporter.Track("note_updated", map[string]any{
		"note_id":        id,
		"title_length":   len(n.Title),
		"content_length": len(n.Content),
	})
	return n.clone(), true
}

// Delete removes the note with the given id and reports whether it existed.
func (s *NoteStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.notes[i]

	notes := make([]Note, 0, len(s.notes)-1)
	notes = append(notes, s.notes[:i]...)
	s.notes = append(notes, s.notes[i+1:]...)
	err := s.persist(ctx)
	s.mu.Unlock()
	s.reportSave(err)

	s.reporter.Track("note_deleted", map[string]any{
		"note_id":        id,
		"title_length":   len(removed.Title),
		"content_length": len(removed.Content),
	})
	return true
}

// GetByID looks a note up without side effects.
func (s *NoteStore) GetByID(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i].clone(), true
}

// PersistErr returns the error of the most recent write, or nil when it succeeded.
// Mutations never fail; callers that need durability check this afterwards.
func (s *NoteStore) PersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPersistErr
}

// Close releases the storage if it holds resources.
func (s *NoteStore) Close() error {
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Watch forwards external changes to the store's key, when the storage supports it.
func (s *NoteStore) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx, s.key)
}

func (s *NoteStore) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole collection. Must be called with s.mu held.
// Before the initial load nothing is written, so a late load cannot be clobbered.
// The returned error goes to reportSave once s.mu is released.
func (s *NoteStore) persist(ctx context.Context) error {
	if !s.ready {
		return nil
	}

	blob, err := EncodeNotes(s.notes)
	if err == nil {
		err = s.storage.Set(ctx, s.key, blob)
	}
	s.lastPersistErr = err
	if err != nil {
		s.logger.Error("failed to save notes", "key", s.key, "error", err)
		return err
	}
	s.logger.Debug("notes saved", "key", s.key, "count", len(s.notes))
	return nil
}

func (s *NoteStore) reportSave(err error) {
	if err != nil {
		s.reporter.TrackError(err, map[string]any{"context": ContextSaving})
	}
}

func snapshot(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.clone()
	}
	return out
}

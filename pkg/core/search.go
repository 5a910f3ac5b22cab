package core

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Search returns the notes whose title, content or any tag contains query,
// ignoring case, in collection order. A blank query returns every note.
func (s *NoteStore) Search(query string) []Note {
	if strings.TrimSpace(query) == "" {
		return s.Notes()
	}

	s.mu.RLock()
	matches := make([]Note, 0)
	for _, n := range s.notes {
		if Matches(n, query) {
			matches = append(matches, n.clone())
		}
	}
	s.mu.RUnlock()

	s.reporter.Track("notes_searched", map[string]any{
		"query_length":  len(query),
		"results_count": len(matches),
	})
	return matches
}

// Matches reports whether n matches a non-blank search query.
func Matches(n Note, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FilterByTag returns the notes with at least one tag matching the glob pattern
// (for example "work/**" or "proj-*"), in collection order.
func (s *NoteStore) FilterByTag(pattern string) ([]Note, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Note, 0)
	for _, n := range s.notes {
		for _, tag := range n.Tags {
			if ok, _ := doublestar.Match(pattern, tag); ok {
				matches = append(matches, n.clone())
				break
			}
		}
	}
	return matches, nil
}

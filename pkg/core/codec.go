package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form timestamps are written in.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TimestampPrecision is the resolution timestamps keep across a round trip.
const TimestampPrecision = time.Millisecond

// normalizeTime brings t to the form that survives encoding unchanged.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

// record is the wire form of a Note.
type record struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func toRecord(n Note) record {
	return record{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt: n.UpdatedAt.UTC().Format(TimestampLayout),
	}
}

func (r record) toNote() (Note, error) {
	if r.ID == "" {
		return Note{}, errors.New("missing id")
	}
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("note %s: created_at: %w", r.ID, err)
	}
	updated, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("note %s: updated_at: %w", r.ID, err)
	}
	if updated.Before(created) {
		updated = created
	}
	return Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Tags:      cloneTags(r.Tags),
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// MarshalJSON writes the note in its stored wire form.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(toRecord(n))
}

// UnmarshalJSON reads a note in its stored wire form.
func (n *Note) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	note, err := r.toNote()
	if err != nil {
		return err
	}
	*n = note
	return nil
}

// SkippedRecordsError lists the records DecodeNotes dropped while keeping the rest.
type SkippedRecordsError struct {
	Errs []error
}

func (e *SkippedRecordsError) Error() string {
	return fmt.Sprintf("skipped %d invalid note record(s): %v", len(e.Errs), errors.Join(e.Errs...))
}

func (e *SkippedRecordsError) Unwrap() []error {
	return e.Errs
}

// EncodeNotes serializes the collection as a JSON array.
func EncodeNotes(notes []Note) (string, error) {
	records := make([]record, len(notes))
	for i, n := range notes {
		records[i] = toRecord(n)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeNotes parses a JSON array written by EncodeNotes.
//
// Absent tags become an empty slice, later records repeating an id are dropped,
// and an update time earlier than the creation time is raised to it.
// Timestamps are kept at TimestampPrecision.
//
// A blob that is not a JSON array of records is an error. Individual records
// without an id or with unreadable timestamps are skipped: the valid notes are
// returned together with a *SkippedRecordsError.
func DecodeNotes(blob string) ([]Note, error) {
	if strings.TrimSpace(blob) == "" {
		return []Note{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("invalid notes json: %w", err)
	}

	notes := make([]Note, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	var skipped []error
	for i, msg := range raw {
		var r record
		if err := json.Unmarshal(msg, &r); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		n, err := r.toNote()
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}

	if len(skipped) > 0 {
		return notes, &SkippedRecordsError{Errs: skipped}
	}
	return notes, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return normalizeTime(t), nil
}

// Package core holds the note domain: the Note record, the Storage port and the
// NoteStore that owns the canonical collection.
package core

import "time"

// UntitledNote is the title given to notes created without one.
const UntitledNote = "Untitled Note"

// Note is the central entity of the domain.
// It is replaced, never mutated: the store hands out copies.
// Its JSON form is the stored wire form (see EncodeNotes).
type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTag reports whether the note carries exactly the given tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (n Note) clone() Note {
	n.Tags = cloneTags(n.Tags)
	return n
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// Input carries the fields of a note to be created.
type Input struct {
	Title   string
	Content string
	Tags    []string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// WithTitle returns a copy of p that sets the title.
func (p Patch) WithTitle(title string) Patch {
	p.Title = &title
	return p
}

// WithContent returns a copy of p that sets the content.
func (p Patch) WithContent(content string) Patch {
	p.Content = &content
	return p
}

// WithTags returns a copy of p that replaces the tags.
func (p Patch) WithTags(tags []string) Patch {
	t := cloneTags(tags)
	p.Tags = &t
	return p
}

// IsEmpty reports whether the patch sets no field.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}

func (p Patch) apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = cloneTags(*p.Tags)
	}
	return n
}

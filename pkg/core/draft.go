package core

import (
	"slices"
	"strings"
)

// Draft is an unsaved working copy of a note's fields, as held by an editor.
// It is never stored; saving turns it into a Create input or an Update patch.
type Draft struct {
	Title   string
	Content string
	Tags    []string

	base Note
}

// NewDraft returns an empty draft for a new note.
func NewDraft() *Draft {
	return &Draft{Tags: []string{}}
}

// DraftFrom returns a draft seeded with the fields of n.
func DraftFrom(n Note) *Draft {
	return &Draft{
		Title:   n.Title,
		Content: n.Content,
		Tags:    cloneTags(n.Tags),
		base:    n.clone(),
	}
}

// AddTag appends the trimmed tag unless it is blank or already present.
// It reports whether the tag was added.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(d.Tags, tag) {
		return false
	}
	d.Tags = append(d.Tags, tag)
	return true
}

// RemoveTag drops every exact occurrence of tag and reports whether one was found.
func (d *Draft) RemoveTag(tag string) bool {
	n := len(d.Tags)
	d.Tags = slices.DeleteFunc(d.Tags, func(t string) bool { return t == tag })
	return len(d.Tags) != n
}

// HasChanges reports whether the draft differs from the note it was seeded from.
func (d *Draft) HasChanges() bool {
	return d.Title != d.base.Title ||
		d.Content != d.base.Content ||
		!slices.Equal(d.Tags, d.base.Tags)
}

// IsEmpty reports whether both the title and the content are blank.
func (d *Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == ""
}

// Validate rejects drafts that would save an empty note.
func (d *Draft) Validate() error {
	if d.IsEmpty() {
		return ErrEmptyDraft
	}
	return nil
}

// Input converts the draft into the fields of a new note.
func (d *Draft) Input() Input {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = UntitledNote
	}
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if strings.TrimSpace(t) != "" {
			tags = append(tags, t)
		}
	}
	return Input{
		Title:   title,
		Content: strings.TrimSpace(d.Content),
		Tags:    tags,
	}
}

// Patch converts the draft into an update that replaces every field.
func (d *Draft) Patch() Patch {
	in := d.Input()
	return Patch{}.WithTitle(in.Title).WithContent(in.Content).WithTags(in.Tags)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

func errNoteNotFound(id string) error {
	return fmt.Errorf("note %q not found", id)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printList writes one line per note: id, title and tags.
func printList(w io.Writer, notes []core.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}
	for _, n := range notes {
		line := fmt.Sprintf("%s  %s", n.ID, n.Title)
		if len(n.Tags) > 0 {
			line += "  " + tagLabels(n.Tags)
		}
		fmt.Fprintln(w, line)
	}
}

// printNote writes the reading view of a single note.
func printNote(w io.Writer, n core.Note) {
	fmt.Fprintln(w, n.Title)
	fmt.Fprintf(w, "Last updated: %s\n", n.UpdatedAt.Local().Format(time.DateTime))
	if len(n.Tags) > 0 {
		fmt.Fprintln(w, tagLabels(n.Tags))
	}
	fmt.Fprintln(w)
	if n.Content == "" {
		fmt.Fprintln(w, "This note is empty.")
		return
	}
	fmt.Fprintln(w, n.Content)
}

func tagLabels(tags []string) string {
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = "#" + t
	}
	return strings.Join(labels, " ")
}

// readContent resolves "-" to the whole of stdin.
func readContent(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

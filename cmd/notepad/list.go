package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

func newListCmd(a *app) *cobra.Command {
	var (
		query  string
		tag    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		Long: `Lists the collection, optionally narrowed by a search query and a tag glob.
The query matches titles, content and tags case-insensitively.`,
		Example: `  notepad list --query friday
  notepad list --tag "work/*" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			notes, err := selectNotes(store, query, tag)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), notes)
			}
			printList(cmd.OutOrStdout(), notes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query")
	cmd.Flags().StringVar(&tag, "tag", "", "Only notes with a tag matching this glob")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

// selectNotes applies the tag glob, then the query.
func selectNotes(store *core.NoteStore, query, tag string) ([]core.Note, error) {
	if tag == "" {
		return store.Search(query), nil
	}
	tagged, err := store.FilterByTag(tag)
	if err != nil || strings.TrimSpace(query) == "" {
		return tagged, err
	}
	out := make([]core.Note, 0, len(tagged))
	for _, n := range tagged {
		if core.Matches(n, query) {
			out = append(out, n)
		}
	}
	return out, nil
}

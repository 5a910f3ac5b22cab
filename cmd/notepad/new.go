package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		title   string
		content string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Long: `Creates a note and prints its id.
A note needs a title or some content. Without a title it is saved as "Untitled Note".`,
		Example: `  notepad new --title "Shopping" --content "eggs, milk" --tag home
  echo "meeting notes" | notepad new --content -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readContent(content, cmd.InOrStdin())
			if err != nil {
				return err
			}

			draft := core.NewDraft()
			draft.Title = title
			draft.Content = body
			for _, t := range tags {
				draft.AddTag(t)
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			note := store.Create(ctx, draft.Input())
			if err := store.PersistErr(); err != nil {
				return fmt.Errorf("note %s was not saved: %w", note.ID, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", `Note content ("-" reads stdin)`)
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		title      string
		content    string
		tags       []string
		addTags    []string
		removeTags []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note",
		Long: `Edits a note through a draft seeded from its current fields.
--tag replaces all tags; --add-tag and --remove-tag adjust them.
Nothing is written when the result equals the saved note.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, note, err := a.findNote(ctx, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			flags := cmd.Flags()
			draft := core.DraftFrom(note)
			if flags.Changed("title") {
				draft.Title = title
			}
			if flags.Changed("content") {
				if draft.Content, err = readContent(content, cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if flags.Changed("tag") {
				draft.Tags = []string{}
				for _, t := range tags {
					draft.AddTag(t)
				}
			}
			for _, t := range addTags {
				draft.AddTag(t)
			}
			for _, t := range removeTags {
				draft.RemoveTag(t)
			}

			if !draft.HasChanges() {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
				return nil
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			updated, _ := store.Update(ctx, note.ID, draft.Patch())
			if err := store.PersistErr(); err != nil {
				return fmt.Errorf("note %s was not saved: %w", note.ID, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", `New content ("-" reads stdin)`)
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace the tags (repeatable)")
	cmd.Flags().StringSliceVar(&addTags, "add-tag", nil, "Tag to add (repeatable)")
	cmd.Flags().StringSliceVar(&removeTags, "remove-tag", nil, "Tag to remove (repeatable)")
	return cmd
}

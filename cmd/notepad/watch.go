package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		query string
		tag   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the note list whenever the collection changes",
		Long: `Prints the (optionally filtered) list, then prints it again every time the
stored collection is changed by another process. Only the fs adapter can be watched.
Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			events, err := store.Watch(ctx)
			if errors.Is(err, core.ErrNotWatchable) {
				return fmt.Errorf("adapter %q cannot be watched: %w", a.cfg.Adapter, err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printSelection(out, store, query, tag); err != nil {
				return err
			}

			for event := range events {
				a.logger.Debug("collection changed", "event", event.String())
				if err := a.reprint(ctx, out, query, tag); err != nil {
					a.logger.Error("failed to reload notes", "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query")
	cmd.Flags().StringVar(&tag, "tag", "", "Only notes with a tag matching this glob")
	return cmd
}

// reprint loads a fresh store, since a loaded store never re-reads its storage.
func (a *app) reprint(ctx context.Context, out io.Writer, query, tag string) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintln(out, "---")
	return printSelection(out, store, query, tag)
}

func printSelection(out io.Writer, store *core.NoteStore, query, tag string) error {
	notes, err := selectNotes(store, query, tag)
	if err != nil {
		return err
	}
	printList(out, notes)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Notepad",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notepad v%s\n", notepad.Version)
		},
	}
}

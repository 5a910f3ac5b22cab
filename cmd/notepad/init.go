package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/internal/platform"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a notepad workspace in the current directory",
		Long: `Creates the .notepad directory and a notepad.yaml describing the storage.
The --adapter, --uri and --key flags are written into the new config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Join(wd, platform.SystemDir), 0755); err != nil {
				return fmt.Errorf("creating %s: %w", platform.SystemDir, err)
			}

			path := filepath.Join(wd, platform.ConfigFile)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Workspace already initialized in %s\n", wd)
				return nil
			}

			cfg := a.cfg
			if cfg.URI == "" {
				cfg.URI = platform.DefaultURI(cfg.Adapter)
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("writing %s: %w", platform.ConfigFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized notepad workspace in %s\n", wd)
			return nil
		},
	}
}

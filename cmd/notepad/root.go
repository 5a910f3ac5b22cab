package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/analytics"
	"github.com/aretw0/notepad/pkg/core"
)

// app carries the persistent flags and the state shared by every command.
type app struct {
	configPath string
	adapter    string
	uri        string
	key        string
	verbose    bool

	cfg    platform.Config
	root   string
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "notepad",
		Short: "A small tagged note collection",
		Long: `Notepad keeps a collection of titled, tagged notes in a single storage slot.
The collection lives in .notepad/ by default and can also be kept in SQLite or Redis.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to notepad.yaml (default: discovered from the working directory)")
	flags.StringVar(&a.adapter, "adapter", "", "Storage adapter (fs, memory, sqlite, redis)")
	flags.StringVar(&a.uri, "uri", "", "Adapter location: directory, SQLite DSN or Redis address")
	flags.StringVar(&a.key, "key", "", "Storage key of the collection")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newInitCmd(a),
		newNewCmd(a),
		newEditCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newWatchCmd(a),
		newStateCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup resolves the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, root, err := a.resolveConfig()
	if err != nil {
		return err
	}
	if a.adapter != "" {
		cfg = cfg.WithAdapter(a.adapter)
	}
	if a.uri != "" {
		cfg.URI = a.uri
	}
	if a.key != "" {
		cfg.Key = a.key
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := platform.ParseLevel(cfg.LogLevel)
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	a.cfg = cfg
	a.root = root
	return nil
}

// resolveConfig finds the config the same way git finds a repository: an
// explicit path wins, then the nearest workspace above the working directory,
// then defaults rooted at the working directory.
func (a *app) resolveConfig() (platform.Config, string, error) {
	if a.configPath != "" {
		cfg, err := platform.LoadConfig(a.configPath)
		if err != nil {
			return platform.Config{}, "", err
		}
		return cfg, filepath.Dir(a.configPath), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return platform.Config{}, "", err
	}
	root, err := platform.FindRoot(wd)
	if errors.Is(err, platform.ErrRootNotFound) {
		return platform.DefaultConfig(), wd, nil
	}
	if err != nil {
		return platform.Config{}, "", err
	}

	path := filepath.Join(root, platform.ConfigFile)
	cfg, err := platform.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return platform.DefaultConfig(), root, nil
	}
	return cfg, root, err
}

// openStore builds and loads the store described by the resolved config.
func (a *app) openStore(ctx context.Context) (*core.NoteStore, error) {
	opts := append(a.cfg.Options(),
		platform.WithLogger(a.logger),
		platform.WithReporter(analytics.NewLogReporter(a.logger)),
	)
	return platform.New(ctx, a.cfg.ResolveURI(a.root), opts...)
}

// findNote loads the store and looks up id, failing when it is unknown.
func (a *app) findNote(ctx context.Context, id string) (*core.NoteStore, core.Note, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, core.Note{}, err
	}
	note, ok := store.GetByID(id)
	if !ok {
		store.Close()
		return nil, core.Note{}, errNoteNotFound(id)
	}
	return store, note, nil
}

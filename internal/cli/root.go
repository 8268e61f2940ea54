// Package cli implements the gostock command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptstock/gostock/internal/config"
	"github.com/promptstock/gostock/internal/prompts"
	"github.com/promptstock/gostock/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database string
	Verbose  bool
}

// NewRootCommand creates the root command for the gostock CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gostock",
		Short: "gostock - local prompt library",
		Long:  "Manage a local library of prompts, optionally grouped in folders.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.Verbose)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "gostock.db", "path to the database file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewPromptCommand(opts))
	cmd.AddCommand(NewFolderCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewRepairCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// session bundles the store and the layers built on it for one command run.
type session struct {
	Store store.Store
	Repo  *prompts.Repository
	Cfg   *config.Config
}

func (s *session) Close() error {
	return s.Store.Close()
}

// openSession opens the database and repairs dangling folder references
// left behind by an interrupted cascade in an earlier run.
func openSession(opts *RootOptions) (*session, error) {
	db, err := store.NewSQLiteStoreWithDSN(opts.Database)
	if err != nil {
		return nil, err
	}

	repo := prompts.NewRepository(db)
	if n, err := repo.RepairDanglingReferences(); err != nil {
		db.Close()
		return nil, err
	} else if n > 0 {
		slog.Info("repaired dangling folder references", "count", n)
	}

	return &session{
		Store: db,
		Repo:  repo,
		Cfg:   config.New(db),
	}, nil
}

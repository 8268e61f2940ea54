package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/promptstock/gostock/internal/backup"
	"github.com/promptstock/gostock/internal/prompts"
)

// osPath resolves a user-supplied path against the OS filesystem wrapper.
func osPath(fs *osfs.FS, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return fs.FromOSPath(abs)
}

// NewMigrateCommand creates the migrate command. It imports the legacy
// flat prompt list exported by the pre-folders extension, and does
// nothing when the database already has prompts.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate <legacy.json>",
		Short:        "Import a legacy flat prompt list",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := osfs.NewFS()
			path, err := osPath(fs, args[0])
			if err != nil {
				return err
			}
			data, err := hackpadfs.ReadFile(fs, path)
			if err != nil {
				return fmt.Errorf("failed to read legacy file: %w", err)
			}
			legacy, err := prompts.ParseLegacy(data)
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Repo.MigrateLegacy(legacy)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d prompts\n", n)
			return nil
		},
	}
}

// NewRepairCommand creates the repair command. openSession already runs
// a repair pass; the explicit command exists so a repair can be run and
// reported on its own.
func NewRepairCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "repair",
		Short:        "Reattach prompts whose folder no longer exists",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Repo.RepairDanglingReferences()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "repaired %d prompts\n", n)
			return nil
		},
	}
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "export <file>",
		Short:        "Export all data to a backup archive",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := backup.Export(s.Repo, s.Cfg, time.Now().UnixMilli())
			if err != nil {
				return err
			}

			fs := osfs.NewFS()
			path, err := osPath(fs, args[0])
			if err != nil {
				return err
			}
			if err := a.Write(fs, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d prompts, %d folders\n", len(a.Prompts), len(a.Folders))
			return nil
		},
	}
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "import <file>",
		Short:        "Import a backup archive, replacing records with matching ids",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := osfs.NewFS()
			path, err := osPath(fs, args[0])
			if err != nil {
				return err
			}
			a, err := backup.Read(fs, path)
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := backup.Import(s.Store, s.Cfg, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", n)
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptstock/gostock/internal/prompts"
)

// NewFolderCommand groups the folder subcommands.
func NewFolderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}
	cmd.AddCommand(newFolderAddCommand(rootOpts))
	cmd.AddCommand(newFolderRenameCommand(rootOpts))
	cmd.AddCommand(newFolderRemoveCommand(rootOpts))
	cmd.AddCommand(newFolderReorderCommand(rootOpts))
	return cmd
}

func newFolderReorderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "reorder <id>...",
		Short:        "Set the display order of the folders",
		Long:         "Rewrite the folder list's display order. The ids must name every folder, in the desired order.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			folders, err := s.Repo.ListFolders()
			if err != nil {
				return err
			}
			ordered, err := arrangeByID(folders, args, func(f prompts.Folder) string { return f.ID })
			if err != nil {
				return err
			}
			return s.Repo.ReorderFolders(ordered)
		},
	}
}

func newFolderAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "add <name>",
		Short:        "Add a folder",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := s.Repo.AddFolder(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.ID)
			return nil
		},
	}
}

func newFolderRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "rename <id> <name>",
		Short:        "Rename a folder",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Repo.RenameFolder(args[0], args[1])
		},
	}
}

func newFolderRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "rm <id>",
		Short:        "Delete a folder and every prompt inside it",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Repo.DeleteFolder(args[0])
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptstock/gostock/internal/prompts"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List folders and prompts in display order",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	folders, err := s.Repo.ListFolders()
	if err != nil {
		return err
	}
	all, err := s.Repo.ListPrompts()
	if err != nil {
		return err
	}

	byFolder := make(map[string][]prompts.Prompt)
	for _, p := range all {
		byFolder[p.FolderID] = append(byFolder[p.FolderID], p)
	}
	for id := range byFolder {
		prompts.SortPrompts(byFolder[id])
	}

	out := cmd.OutOrStdout()
	for _, f := range folders {
		fmt.Fprintf(out, "%s  [%s]\n", f.Name, f.ID)
		for _, p := range byFolder[f.ID] {
			fmt.Fprintf(out, "  %s  [%s]\n", p.Title, p.ID)
		}
	}
	for _, p := range byFolder[prompts.RootFolder] {
		fmt.Fprintf(out, "%s  [%s]\n", p.Title, p.ID)
	}
	return nil
}

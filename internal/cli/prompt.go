package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptstock/gostock/internal/prompts"
)

// NewPromptCommand groups the prompt subcommands.
func NewPromptCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Manage prompts",
	}
	cmd.AddCommand(newPromptAddCommand(rootOpts))
	cmd.AddCommand(newPromptEditCommand(rootOpts))
	cmd.AddCommand(newPromptMoveCommand(rootOpts))
	cmd.AddCommand(newPromptRemoveCommand(rootOpts))
	cmd.AddCommand(newPromptReorderCommand(rootOpts))
	return cmd
}

func newPromptReorderCommand(rootOpts *RootOptions) *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:          "reorder <id>...",
		Short:        "Set the display order of a folder's prompts",
		Long:         "Rewrite a sibling group's display order. The ids must name every prompt in the folder (or in the root list), in the desired order.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			group, err := s.Repo.PromptsInFolder(folderID)
			if err != nil {
				return err
			}
			ordered, err := arrangeByID(group, args, func(p prompts.Prompt) string { return p.ID })
			if err != nil {
				return err
			}
			return s.Repo.ReorderPrompts(ordered)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "folder id of the group (empty for the root list)")
	return cmd
}

// arrangeByID permutes records into the order the ids dictate. The ids
// must match the record set exactly; reordering a subset would break the
// group's contiguous numbering.
func arrangeByID[T any](records []T, ids []string, idOf func(T) string) ([]T, error) {
	if len(ids) != len(records) {
		return nil, fmt.Errorf("got %d ids, the group has %d records", len(ids), len(records))
	}
	byID := make(map[string]T, len(records))
	for _, rec := range records {
		byID[idOf(rec)] = rec
	}
	out := make([]T, 0, len(records))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("id %q is not in the group", id)
		}
		out = append(out, rec)
		delete(byID, id)
	}
	return out, nil
}

func newPromptAddCommand(rootOpts *RootOptions) *cobra.Command {
	var content string
	var folderID string

	cmd := &cobra.Command{
		Use:          "add <title>",
		Short:        "Add a prompt",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.Repo.AddPrompt(args[0], content, folderID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "prompt text")
	cmd.Flags().StringVar(&folderID, "folder", "", "destination folder id (empty for the root list)")
	return cmd
}

func newPromptEditCommand(rootOpts *RootOptions) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:          "edit <id>",
		Short:        "Edit a prompt's title or content",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := prompts.PromptUpdate{}
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("content") {
				upd.Content = &content
			}
			if upd.Title == nil && upd.Content == nil {
				return fmt.Errorf("nothing to change: pass --title or --content")
			}

			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Repo.UpdatePrompt(args[0], upd)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new prompt text")
	return cmd
}

func newPromptMoveCommand(rootOpts *RootOptions) *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:          "mv <id>",
		Short:        "Move a prompt to a folder (or back to the root list)",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Repo.MovePrompt(args[0], folderID)
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "destination folder id (empty for the root list)")
	return cmd
}

func newPromptRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "rm <id>",
		Short:        "Delete a prompt",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Repo.DeletePrompt(args[0])
		},
	}
}

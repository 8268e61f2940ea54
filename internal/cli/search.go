package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "search <query>",
		Short:        "Search prompt titles, prompt text and folder names",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Repo.SearchAll(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range res.Folders {
				fmt.Fprintf(out, "folder  %s  [%s]\n", f.Name, f.ID)
			}
			for _, p := range res.Prompts {
				fmt.Fprintf(out, "prompt  %s  [%s]\n", p.Title, p.ID)
			}
			if len(res.Folders) == 0 && len(res.Prompts) == 0 {
				fmt.Fprintln(out, "no matches")
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand groups the config subcommands.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "get <key>",
		Short:        "Print a setting's value",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := s.Cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "set <key> <value>",
		Short:        "Store a setting",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Cfg.Set(args[0], args[1])
		},
	})

	return cmd
}

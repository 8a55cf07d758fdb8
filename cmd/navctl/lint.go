package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func lintCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report routes that can never match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _, err := flags.table()
			if err != nil {
				return err
			}

			problems := table.Validate()
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d route problem(s) found", len(problems))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d routes ok\n", table.Len())
			return nil
		},
	}
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	navigation "github.com/goliatone/go-navigation"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	var withBase bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show which handler a path resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, cfg, err := flags.table()
			if err != nil {
				return err
			}

			path := args[0]
			if withBase {
				path = navigation.StripBase(cfg.BasePath, path)
			}

			res, ok := table.Resolve(path)
			if !ok {
				return navigation.NewNotFoundError(navigation.NormalizePath(path))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "handler: %s\n", res.Handler)
			if res.Fallback {
				fmt.Fprintln(out, "pattern: (default)")
			} else {
				fmt.Fprintf(out, "pattern: %s\n", res.Pattern)
			}

			names := make([]string, 0, len(res.Params))
			for name := range res.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "param %s=%s\n", name, res.Params[name])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withBase, "with-base", false, "Treat the path as a location that includes the base path")

	return cmd
}

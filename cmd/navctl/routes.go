package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List routes in resolution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, cfg, err := flags.table()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPATTERN\tHANDLER\tPARAMS")
			for i, route := range table.Routes() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, route.Pattern, route.Handler, strings.Join(route.Params, ","))
			}
			if def, ok := table.Default(); ok {
				fmt.Fprintf(w, "-\t*\t%s\t\n", def)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if cfg.BasePath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "base path: %s\n", cfg.BasePath)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	navigation "github.com/goliatone/go-navigation"
)

var (
	version = "dev"
	commit  = "none"
)

type globalFlags struct {
	config  string
	verbose bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "navctl",
		Short: "Inspect and exercise navigation route tables",
		Long: `navctl loads a navigation YAML config and lets you list its routes,
resolve paths against them, lint the table for shadowed routes and
render a path through file templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "navigation.yaml", "Path to the navigation config")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log navigation activity to stderr")

	cmd.AddCommand(
		routesCmd(flags),
		resolveCmd(flags),
		lintCmd(flags),
		renderCmd(flags),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "navctl %s (%s)\n", version, commit)
		},
	}
}

func (f *globalFlags) load() (navigation.Config, error) {
	cfg, err := navigation.LoadConfigFile(f.config)
	if err != nil {
		return navigation.Config{}, fmt.Errorf("load %s: %w", f.config, err)
	}
	return cfg, nil
}

func (f *globalFlags) logger() navigation.Logger {
	if !f.verbose {
		return navigation.DefaultLogger()
	}
	lgr, err := zap.NewDevelopment()
	if err != nil {
		return navigation.DefaultLogger()
	}
	return navigation.NewZapLogger(lgr.Sugar())
}

// table builds a route table from the config alone.
func (f *globalFlags) table() (*navigation.RouteTable, navigation.Config, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, cfg, err
	}

	table := navigation.NewRouteTable()
	for _, route := range cfg.Routes {
		if err := table.Register(route.Pattern, route.Handler); err != nil {
			return nil, cfg, err
		}
	}
	if cfg.DefaultRoute != "" {
		table.SetDefault(cfg.DefaultRoute)
	}
	return table, cfg, nil
}

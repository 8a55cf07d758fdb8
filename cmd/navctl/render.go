package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-navigation/app"
	"github.com/goliatone/go-navigation/view"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		templates string
		ext       string
		locale    string
	)

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render a path through file templates named after handlers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			lgr := flags.logger()

			engine, err := view.NewEngine(view.EngineConfig{
				Dir:    templates,
				Ext:    ext,
				Locale: locale,
			}, lgr)
			if err != nil {
				return err
			}

			a, err := app.New(app.Config{Config: cfg}, app.WithEngine(engine), app.WithLogger(lgr))
			if err != nil {
				return err
			}

			handlers := map[string]bool{}
			for _, route := range cfg.Routes {
				handlers[route.Handler] = true
			}
			if cfg.DefaultRoute != "" {
				handlers[cfg.DefaultRoute] = true
			}
			for handler := range handlers {
				if err := a.Component(handler, view.Template("")); err != nil {
					return err
				}
			}

			html, err := a.RenderPath(args[0], nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templates, "templates", "t", "templates", "Template directory")
	cmd.Flags().StringVar(&ext, "ext", ".html", "Template file extension")
	cmd.Flags().StringVar(&locale, "locale", "en_US", "Locale used by the date helper")

	return cmd
}

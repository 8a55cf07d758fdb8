package routecontext

import (
	navigation "github.com/goliatone/go-navigation"
)

// Merger is the state the route context is written into. app.Store
// satisfies it.
type Merger interface {
	Merge(patch map[string]any)
}

type Config struct {
	Skip                func(nav *navigation.Navigation) bool
	Store               Merger
	TemplateContextKey  string
	CurrentRouteNameKey string
	CurrentParamsKey    string
	CurrentPathKey      string
	ExportAsMap         bool
}

var ConfigDefault = Config{
	Skip:                nil,
	TemplateContextKey:  "template_context",
	CurrentRouteNameKey: "current_route_name",
	CurrentParamsKey:    "current_params",
	CurrentPathKey:      "current_path",
	ExportAsMap:         true,
}

// New returns a hook that exports the resolved handler, params and path
// before the component renders, so templates can read them from globals.
func New(config ...Config) navigation.Hook {
	cfg := configDefault(config...)

	return navigation.Hook{
		Name: "routecontext",
		Before: func(nav *navigation.Navigation) {
			if cfg.Store == nil {
				return
			}
			if cfg.Skip != nil && cfg.Skip(nav) {
				return
			}

			params := nav.Params.Map()

			if cfg.ExportAsMap {
				cfg.Store.Merge(map[string]any{
					cfg.TemplateContextKey: map[string]any{
						cfg.CurrentRouteNameKey: nav.Handler,
						cfg.CurrentParamsKey:    params,
						cfg.CurrentPathKey:      nav.Path,
					},
				})
				return
			}

			cfg.Store.Merge(map[string]any{
				cfg.CurrentRouteNameKey: nav.Handler,
				cfg.CurrentParamsKey:    params,
				cfg.CurrentPathKey:      nav.Path,
			})
		},
	}
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.TemplateContextKey == "" {
		cfg.TemplateContextKey = ConfigDefault.TemplateContextKey
	}

	if cfg.CurrentRouteNameKey == "" {
		cfg.CurrentRouteNameKey = ConfigDefault.CurrentRouteNameKey
	}

	if cfg.CurrentParamsKey == "" {
		cfg.CurrentParamsKey = ConfigDefault.CurrentParamsKey
	}

	if cfg.CurrentPathKey == "" {
		cfg.CurrentPathKey = ConfigDefault.CurrentPathKey
	}

	return cfg
}

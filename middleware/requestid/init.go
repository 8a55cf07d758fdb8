package requestid

import (
	"github.com/google/uuid"

	navigation "github.com/goliatone/go-navigation"
)

// Merger receives the navigation id when StateKey is exported.
type Merger interface {
	Merge(patch map[string]any)
}

type Config struct {
	Skip      func(nav *navigation.Navigation) bool
	Generator func() string
	StateKey  string
	Store     Merger
}

var ConfigDefault = Config{
	Skip:      nil,
	Generator: uuid.NewString,
	StateKey:  "navigation_id",
}

// New returns a hook that stamps every navigation with an id. Ids already
// set by an earlier hook are kept.
func New(config ...Config) navigation.Hook {
	cfg := configDefault(config...)

	return navigation.Hook{
		Name: "requestid",
		Before: func(nav *navigation.Navigation) {
			if cfg.Skip != nil && cfg.Skip(nav) {
				return
			}

			if nav.ID == "" {
				nav.ID = cfg.Generator()
			}

			if cfg.Store != nil {
				cfg.Store.Merge(map[string]any{cfg.StateKey: nav.ID})
			}
		},
	}
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.Generator == nil {
		cfg.Generator = ConfigDefault.Generator
	}

	if cfg.StateKey == "" {
		cfg.StateKey = ConfigDefault.StateKey
	}

	return cfg
}

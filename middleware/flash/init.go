package flash

import (
	navigation "github.com/goliatone/go-navigation"
)

// Merger is the state flash data is written into.
type Merger interface {
	Merge(patch map[string]any)
}

type Config struct {
	Skip     func(nav *navigation.Navigation) bool
	StateKey string
	Flash    *Flash
	Store    Merger
}

var DefaultFlash = NewFlash()

var ConfigDefault = Config{
	Skip:     nil,
	StateKey: "flash",
	Flash:    DefaultFlash,
}

// New returns a hook that moves queued messages into the store when a
// navigation starts. Every navigation replaces the previous flash data, so
// a message is shown exactly once.
func New(config ...Config) navigation.Hook {
	cfg := configDefault(config...)

	return navigation.Hook{
		Name: "flash",
		Before: func(nav *navigation.Navigation) {
			if cfg.Store == nil {
				return
			}
			if cfg.Skip != nil && cfg.Skip(nav) {
				return
			}
			cfg.Store.Merge(map[string]any{
				cfg.StateKey: toContext(cfg.Flash.take()),
			})
		},
	}
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.StateKey == "" {
		cfg.StateKey = ConfigDefault.StateKey
	}

	if cfg.Flash == nil {
		cfg.Flash = ConfigDefault.Flash
	}

	return cfg
}

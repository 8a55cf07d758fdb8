package guard

import (
	navigation "github.com/goliatone/go-navigation"
)

type Option func(*config)

// Predicate reports whether nav may proceed.
type Predicate func(nav *navigation.Navigation) bool

type config struct {
	name     string
	match    string
	redirect string
	replace  bool
	onDenied func(nav *navigation.Navigation)
	onError  func(error)
}

// New returns a hook that redirects navigations rejected by allow. A
// navigation already headed to the redirect path is always let through.
func New(allow Predicate, opts ...Option) navigation.Hook {
	cfg := newConfig(opts...)

	return navigation.Hook{
		Name:  cfg.name,
		Match: cfg.match,
		Before: func(nav *navigation.Navigation) {
			if allow == nil || allow(nav) {
				return
			}
			if nav.Path == cfg.redirect {
				return
			}

			if cfg.onDenied != nil {
				cfg.onDenied(nav)
			}

			var navOpts []navigation.NavigateOption
			if cfg.replace {
				navOpts = append(navOpts, navigation.WithReplace())
			}
			if err := nav.Redirect(cfg.redirect, navOpts...); err != nil && cfg.onError != nil {
				cfg.onError(err)
			}
		},
	}
}

// WithRedirect sets where denied navigations go. Defaults to "/".
func WithRedirect(path string) Option {
	return func(cfg *config) {
		cfg.redirect = navigation.NormalizePath(path)
	}
}

// WithMatch limits the guard to paths matching a glob.
func WithMatch(pattern string) Option {
	return func(cfg *config) {
		cfg.match = pattern
	}
}

func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithReplace makes the redirect replace the current history entry.
func WithReplace(replace bool) Option {
	return func(cfg *config) {
		cfg.replace = replace
	}
}

func WithDenied(fn func(nav *navigation.Navigation)) Option {
	return func(cfg *config) {
		cfg.onDenied = fn
	}
}

func WithErrorHandler(fn func(error)) Option {
	return func(cfg *config) {
		cfg.onError = fn
	}
}

func newConfig(opts ...Option) config {
	cfg := config{
		name:     "guard",
		redirect: "/",
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return cfg
}

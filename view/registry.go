package view

import (
	"sort"
	"sync"

	navigation "github.com/goliatone/go-navigation"
)

// Registry maps handler ids to component factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	engine    *Engine
	globals   func() map[string]any
}

type RegistryOption func(*Registry)

// WithEngine sets the template engine exposed to components.
func WithEngine(e *Engine) RegistryOption {
	return func(r *Registry) {
		r.engine = e
	}
}

// WithGlobals sets the source of app-wide template values.
func WithGlobals(fn func() map[string]any) RegistryOption {
	return func(r *Registry) {
		r.globals = fn
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds name to factory, replacing any previous binding.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return newInvalidComponentError(name, "name is required")
	}
	if factory == nil {
		return newInvalidComponentError(name, "factory is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	return nil
}

// RegisterComponent registers a component value that is shared across mounts.
func (r *Registry) RegisterComponent(name string, c Component) error {
	if c == nil {
		return newInvalidComponentError(name, "component is required")
	}
	return r.Register(name, func(map[string]any) Component { return c })
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Engine() *Engine {
	return r.engine
}

// RenderToString renders handler without mounting it. Lifecycle hooks do
// not run and SetState does not re-render.
func (r *Registry) RenderToString(handler string, params navigation.Params, props map[string]any) (string, error) {
	c, s, err := r.instantiate(handler, params, props)
	if err != nil {
		return "", err
	}
	return c.Render(s)
}

func (r *Registry) instantiate(handler string, params navigation.Params, props map[string]any) (Component, *Scope, error) {
	factory, ok := r.Lookup(handler)
	if !ok {
		return nil, nil, NewComponentNotFoundError(handler)
	}

	c := factory(props)
	if c == nil {
		return nil, nil, newInvalidComponentError(handler, "factory returned nil")
	}

	return c, newScope(handler, params, props, r.engine, r.globals), nil
}

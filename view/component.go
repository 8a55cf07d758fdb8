package view

import (
	navigation "github.com/goliatone/go-navigation"
)

// Component produces the markup for one handler.
type Component interface {
	Render(s *Scope) (string, error)
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(s *Scope) (string, error)

func (f ComponentFunc) Render(s *Scope) (string, error) {
	return f(s)
}

// Factory builds a fresh component instance for every mount.
type Factory func(props map[string]any) Component

// Optional lifecycle hooks. A component implements the ones it needs.
type (
	BeforeMounter   interface{ BeforeMount(s *Scope) }
	Mounter         interface{ Mounted(s *Scope) }
	BeforeUpdater   interface{ BeforeUpdate(s *Scope) }
	Updater         interface{ Updated(s *Scope) }
	BeforeUnmounter interface{ BeforeUnmount(s *Scope) }
	Unmounter       interface{ Unmounted(s *Scope) }
)

// Scope is the data a component renders from: route params, props,
// app-wide globals and its own local state.
type Scope struct {
	Handler string
	Params  navigation.Params
	Props   map[string]any

	globals func() map[string]any
	state   map[string]any
	engine  *Engine
	update  func() error
}

func newScope(handler string, params navigation.Params, props map[string]any, engine *Engine, globals func() map[string]any) *Scope {
	if params == nil {
		params = navigation.Params{}
	}
	if props == nil {
		props = map[string]any{}
	}
	return &Scope{
		Handler: handler,
		Params:  params,
		Props:   props,
		globals: globals,
		state:   map[string]any{},
		engine:  engine,
	}
}

// Engine returns the template engine, nil when none is configured.
func (s *Scope) Engine() *Engine {
	return s.engine
}

// Globals returns a snapshot of the app-wide values.
func (s *Scope) Globals() map[string]any {
	if s.globals == nil {
		return map[string]any{}
	}
	return s.globals()
}

// State returns the local state value for key.
func (s *Scope) State(key string, def any) any {
	if v, ok := s.state[key]; ok {
		return v
	}
	return def
}

// SetState shallow merges patch into the local state and re-renders the
// component if it is still mounted.
func (s *Scope) SetState(patch map[string]any) error {
	for k, v := range patch {
		s.state[k] = v
	}
	if s.update == nil {
		return nil
	}
	return s.update()
}

// Data flattens globals, props and state (later ones win) and adds
// "params" and "handler", ready to be used as a template binding.
func (s *Scope) Data() map[string]any {
	data := map[string]any{}
	for k, v := range s.Globals() {
		data[k] = v
	}
	for k, v := range s.Props {
		data[k] = v
	}
	for k, v := range s.state {
		data[k] = v
	}
	data["params"] = s.Params.Map()
	data["handler"] = s.Handler
	return data
}

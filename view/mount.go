package view

import (
	"sync"

	navigation "github.com/goliatone/go-navigation"
)

// Element is a render target whose content is replaced on every render.
type Element interface {
	ID() string
	SetContent(html string)
	Content() string
}

// MemoryElement is an Element kept in memory.
type MemoryElement struct {
	mu      sync.Mutex
	id      string
	content string
	writes  int
}

func NewElement(id string) *MemoryElement {
	return &MemoryElement{id: id}
}

func (e *MemoryElement) ID() string {
	return e.id
}

func (e *MemoryElement) SetContent(html string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = html
	e.writes++
}

func (e *MemoryElement) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// Writes returns how many times the content was replaced.
func (e *MemoryElement) Writes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writes
}

type instance struct {
	name      string
	component Component
	scope     *Scope
}

// Mount keeps at most one component mounted into its target. It implements
// navigation.Renderer: every Render unmounts the previous component and
// mounts a fresh instance for the new handler.
type Mount struct {
	registry *Registry
	target   Element
	logger   navigation.Logger
	props    func(handler string) map[string]any
	current  *instance
}

type MountOption func(*Mount)

func WithMountLogger(lgr navigation.Logger) MountOption {
	return func(m *Mount) {
		m.logger = lgr
	}
}

// WithProps supplies the props handed to a handler's factory.
func WithProps(fn func(handler string) map[string]any) MountOption {
	return func(m *Mount) {
		m.props = fn
	}
}

func NewMount(registry *Registry, target Element, opts ...MountOption) *Mount {
	m := &Mount{
		registry: registry,
		target:   target,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = navigation.DefaultLogger()
	}
	return m
}

var _ navigation.Renderer = (*Mount)(nil)

func (m *Mount) Render(handler string, params navigation.Params) error {
	var props map[string]any
	if m.props != nil {
		props = m.props(handler)
	}

	c, s, err := m.registry.instantiate(handler, params, props)
	if err != nil {
		return err
	}

	m.Unmount()

	inst := &instance{name: handler, component: c, scope: s}
	s.update = func() error {
		if m.current != inst {
			return nil
		}
		return m.update(inst)
	}

	if h, ok := c.(BeforeMounter); ok {
		h.BeforeMount(s)
	}

	html, err := c.Render(s)
	if err != nil {
		return err
	}

	m.current = inst
	m.target.SetContent(html)
	m.logger.Debug("view mounted %s into #%s", handler, m.target.ID())

	if h, ok := c.(Mounter); ok {
		h.Mounted(s)
	}
	return nil
}

// Update re-renders the mounted component, if any.
func (m *Mount) Update() error {
	if m.current == nil {
		return nil
	}
	return m.update(m.current)
}

func (m *Mount) update(inst *instance) error {
	if h, ok := inst.component.(BeforeUpdater); ok {
		h.BeforeUpdate(inst.scope)
	}

	html, err := inst.component.Render(inst.scope)
	if err != nil {
		return err
	}
	m.target.SetContent(html)

	if h, ok := inst.component.(Updater); ok {
		h.Updated(inst.scope)
	}
	return nil
}

// Unmount removes the mounted component and clears the target.
func (m *Mount) Unmount() {
	inst := m.current
	if inst == nil {
		return
	}

	if h, ok := inst.component.(BeforeUnmounter); ok {
		h.BeforeUnmount(inst.scope)
	}
	m.current = nil
	m.target.SetContent("")
	if h, ok := inst.component.(Unmounter); ok {
		h.Unmounted(inst.scope)
	}
}

// Current returns the mounted handler.
func (m *Mount) Current() (string, bool) {
	if m.current == nil {
		return "", false
	}
	return m.current.name, true
}

func (m *Mount) Target() Element {
	return m.target
}

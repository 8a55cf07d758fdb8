package view

import (
	"github.com/flosch/pongo2/v6"
)

// TemplateComponent renders a file template through the scope's Engine.
// When Name is empty the template name is derived from the handler.
type TemplateComponent struct {
	Name string
	// Data adds values on top of Scope.Data.
	Data func(s *Scope) map[string]any
}

// Template returns a factory for a TemplateComponent named name.
func Template(name string) Factory {
	return func(map[string]any) Component {
		return &TemplateComponent{Name: name}
	}
}

func (c *TemplateComponent) Render(s *Scope) (string, error) {
	e := s.Engine()
	if e == nil {
		return "", newInvalidComponentError(s.Handler, "no template engine configured")
	}

	name := c.Name
	if name == "" {
		name = e.TemplateName(s.Handler)
	}

	data := s.Data()
	if c.Data != nil {
		for k, v := range c.Data(s) {
			data[k] = v
		}
	}

	return e.RenderString(name, data)
}

// InlineComponent renders a template held in memory.
type InlineComponent struct {
	source string
	tpl    *pongo2.Template
}

func NewInline(source string) (*InlineComponent, error) {
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, newTemplateError("inline", err)
	}
	return &InlineComponent{source: source, tpl: tpl}, nil
}

func MustInline(source string) *InlineComponent {
	c, err := NewInline(source)
	if err != nil {
		panic(err)
	}
	return c
}

// Inline compiles source once and returns a factory sharing it.
func Inline(source string) (Factory, error) {
	c, err := NewInline(source)
	if err != nil {
		return nil, err
	}
	return func(map[string]any) Component {
		return c
	}, nil
}

func (c *InlineComponent) Source() string {
	return c.source
}

func (c *InlineComponent) Render(s *Scope) (string, error) {
	ctx := pongo2.Context{}
	if e := s.Engine(); e != nil {
		ctx.Update(pongo2.Context(e.funcs))
	} else {
		ctx.Update(pongo2.Context(defaultFuncs("")))
	}
	ctx.Update(pongo2.Context(s.Data()))

	out, err := c.tpl.Execute(ctx)
	if err != nil {
		return "", newTemplateError("inline", err)
	}
	return out, nil
}

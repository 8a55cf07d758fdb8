package navigation

// RouteDefinition describes one registered route.
type RouteDefinition struct {
	Pattern string   `json:"pattern" yaml:"pattern"`
	Handler string   `json:"handler" yaml:"handler"`
	Params  []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Resolution is the outcome of a successful lookup.
type Resolution struct {
	Handler string
	Params  Params
	// Pattern is the matched pattern, empty when Fallback is set.
	Pattern string
	// Fallback is set when no pattern matched and the default handler was used.
	Fallback bool
}

type routeEntry struct {
	pattern string
	handler string
	matcher *Matcher
}

// RouteTable is an ordered set of route patterns bound to handler ids,
// plus an optional default handler. Lookups scan patterns in registration
// order and the first match wins, even when a later pattern is more literal.
type RouteTable struct {
	entries    []*routeEntry
	index      map[string]int
	defaultH   string
	hasDefault bool
}

func NewRouteTable() *RouteTable {
	return &RouteTable{
		index: make(map[string]int),
	}
}

// Register binds pattern to handler. Patterns are normalized first, so
// "//a//b/" and "/a/b" share one binding. Registering an existing pattern
// replaces its handler and keeps its position.
func (t *RouteTable) Register(pattern, handler string) error {
	key := NormalizePath(pattern)

	if i, ok := t.index[key]; ok {
		t.entries[i].handler = handler
		return nil
	}

	m, err := CompilePattern(key)
	if err != nil {
		return err
	}

	t.index[key] = len(t.entries)
	t.entries = append(t.entries, &routeEntry{
		pattern: key,
		handler: handler,
		matcher: m,
	})
	return nil
}

// RegisterNested registers child under parent.
func (t *RouteTable) RegisterNested(parent, child, handler string) error {
	return t.Register(JoinPath(parent, child), handler)
}

// SetDefault replaces the default handler.
func (t *RouteTable) SetDefault(handler string) {
	t.defaultH = handler
	t.hasDefault = true
}

func (t *RouteTable) ClearDefault() {
	t.defaultH = ""
	t.hasDefault = false
}

func (t *RouteTable) Default() (string, bool) {
	return t.defaultH, t.hasDefault
}

// Resolve finds the handler for path. When nothing matches the default
// handler is returned with empty params. ok is false only when there is
// no match and no default.
func (t *RouteTable) Resolve(path string) (res Resolution, ok bool) {
	path = NormalizePath(path)

	for _, e := range t.entries {
		if params, matched := e.matcher.Match(path); matched {
			return Resolution{
				Handler: e.handler,
				Params:  params,
				Pattern: e.pattern,
			}, true
		}
	}

	if t.hasDefault {
		return Resolution{
			Handler:  t.defaultH,
			Params:   Params{},
			Fallback: true,
		}, true
	}

	return Resolution{}, false
}

// Lookup returns the handler bound to pattern.
func (t *RouteTable) Lookup(pattern string) (string, bool) {
	i, ok := t.index[NormalizePath(pattern)]
	if !ok {
		return "", false
	}
	return t.entries[i].handler, true
}

func (t *RouteTable) Len() int {
	return len(t.entries)
}

// Routes returns the registered routes in registration order.
func (t *RouteTable) Routes() []RouteDefinition {
	out := make([]RouteDefinition, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, RouteDefinition{
			Pattern: e.pattern,
			Handler: e.handler,
			Params:  e.matcher.ParamNames(),
		})
	}
	return out
}

package navigation

import "strconv"

// Params maps parameter names to the raw segment text captured for them.
// Each resolution produces a fresh mapping owned by the caller.
type Params map[string]string

// Get returns the value for name, or the first default value when missing.
func (p Params) Get(name string, defaultValue ...string) string {
	if v, ok := p[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// Int parses the value for name as an integer.
func (p Params) Int(name string, defaultValue int) int {
	v, ok := p[name]
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// Clone returns a copy of p. A nil Params clones to an empty mapping.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Map returns p as a plain map, handy for template bindings.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

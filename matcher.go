package navigation

import (
	"regexp"
	"strings"
)

// Matcher is a compiled route pattern. Literal segments match exactly and
// parameter segments capture one non-empty segment. Matching is anchored on
// both ends, so paths with a different segment count never match.
type Matcher struct {
	pattern string
	names   []string
	re      *regexp.Regexp
}

// CompilePattern compiles pattern into a Matcher.
func CompilePattern(pattern string) (*Matcher, error) {
	segments := strings.Split(pattern, "/")
	parts := make([]string, 0, len(segments))
	names := make([]string, 0)
	seen := make(map[string]int)

	for i, segment := range segments {
		if classifySegment(segment) != segmentParam {
			parts = append(parts, regexp.QuoteMeta(segment))
			continue
		}

		name := strings.TrimPrefix(segment, paramMarker)
		if name == "" {
			return nil, NewInvalidPatternError(pattern, "parameter segment without a name", map[string]any{
				"segment_index": i,
			})
		}
		if prev, ok := seen[name]; ok {
			return nil, NewInvalidPatternError(pattern, "duplicate parameter name :"+name, map[string]any{
				"param":          name,
				"segment_index":  i,
				"previous_index": prev,
			})
		}
		seen[name] = i
		names = append(names, name)
		parts = append(parts, "([^/]+)")
	}

	re, err := regexp.Compile("^" + strings.Join(parts, "/") + "$")
	if err != nil {
		return nil, NewInvalidPatternError(pattern, err.Error())
	}

	return &Matcher{
		pattern: pattern,
		names:   names,
		re:      re,
	}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(pattern string) *Matcher {
	m, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// ParamNames returns the parameter names in the order they appear.
func (m *Matcher) ParamNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Test reports whether path matches the whole pattern.
func (m *Matcher) Test(path string) bool {
	return m.re.MatchString(path)
}

// Params extracts parameter values from path. When path does not match
// the result is an empty mapping.
func (m *Matcher) Params(path string) Params {
	params, _ := m.Match(path)
	return params
}

// Match tests path and extracts its parameters in one pass.
func (m *Matcher) Match(path string) (Params, bool) {
	groups := m.re.FindStringSubmatch(path)
	if groups == nil {
		return Params{}, false
	}

	params := make(Params, len(m.names))
	for i, name := range m.names {
		params[name] = groups[i+1]
	}
	return params, true
}

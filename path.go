package navigation

import "strings"

const paramMarker = ":"

type segmentKind int

const (
	segmentStatic segmentKind = iota
	segmentParam
)

// NormalizePath collapses repeated separators, removes a trailing separator
// and makes the path root relative. The empty path normalizes to "/".
//
//	NormalizePath("//a//b/") == "/a/b"
func NormalizePath(path string) string {
	var b strings.Builder
	b.Grow(len(path) + 1)
	b.WriteByte('/')

	prevSlash := true
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > 1 && strings.HasSuffix(out, "/") {
		out = out[:len(out)-1]
	}
	return out
}

// JoinPath joins parent and child into a single normalized route path.
func JoinPath(parent, child string) string {
	return NormalizePath(parent + "/" + child)
}

// StripBase removes base from the front of location. Locations outside of
// base are returned normalized but otherwise untouched.
func StripBase(base, location string) string {
	base = normalizeBase(base)
	location = NormalizePath(location)
	if base == "" {
		return location
	}
	if location == base {
		return "/"
	}
	if strings.HasPrefix(location, base+"/") {
		return location[len(base):]
	}
	return location
}

// InBase reports whether location lies under base. Every location is under
// an empty base.
func InBase(base, location string) bool {
	base = normalizeBase(base)
	location = NormalizePath(location)
	return base == "" || location == base || strings.HasPrefix(location, base+"/")
}

// WithBase prefixes path with base.
func WithBase(base, path string) string {
	base = normalizeBase(base)
	path = NormalizePath(path)
	if base == "" {
		return path
	}
	if path == "/" {
		return base
	}
	return base + path
}

func normalizeBase(base string) string {
	base = NormalizePath(base)
	if base == "/" {
		return ""
	}
	return base
}

// PathParam returns a parameter segment (e.g., ":id").
func PathParam(name string) string {
	return paramMarker + name
}

func splitPathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func classifySegment(segment string) segmentKind {
	if strings.HasPrefix(segment, paramMarker) {
		return segmentParam
	}
	return segmentStatic
}

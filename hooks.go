package navigation

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
)

// Navigation describes one navigation while it runs through the hooks.
type Navigation struct {
	ID string
	// Path is the normalized path with the base path removed.
	Path string
	// Location is the value written to History.
	Location string
	Handler  string
	Params   Params
	Pattern  string
	Fallback bool
	// Pop is set when the navigation was triggered by a back/forward move.
	Pop     bool
	Replace bool

	router *Router
}

// Router returns the router running this navigation.
func (n *Navigation) Router() *Router {
	return n.router
}

// Redirect abandons this navigation and starts a nested one to path. The
// abandoned navigation stops even when path resolves to nothing. A redirect
// made while handling a back/forward move replaces the current entry, so
// the forward entries survive.
func (n *Navigation) Redirect(path string, opts ...NavigateOption) error {
	n.router.abandon(n)
	if n.Pop {
		opts = append([]NavigateOption{WithReplace()}, opts...)
	}
	return n.router.Navigate(path, opts...)
}

// Hook runs before and after a resolved navigation renders. Match is an
// optional glob over the navigation path using "/" as separator, so "*"
// spans one segment and "**" any number of them.
type Hook struct {
	Name   string
	Match  string
	Before func(*Navigation)
	After  func(*Navigation)

	glob glob.Glob
}

func (h Hook) compile() (Hook, error) {
	if h.Name == "" {
		switch {
		case h.Before != nil:
			h.Name = funcName(h.Before)
		case h.After != nil:
			h.Name = funcName(h.After)
		}
	}

	if h.Before == nil && h.After == nil {
		return h, newInvalidHookError(h.Name, "hook needs a Before or After function")
	}

	if h.Match != "" {
		g, err := glob.Compile(h.Match, '/')
		if err != nil {
			return h, newInvalidHookError(h.Name, "invalid match pattern: "+err.Error())
		}
		h.glob = g
	}

	return h, nil
}

func (h Hook) matches(path string) bool {
	if h.glob == nil {
		return true
	}
	return h.glob.Match(path)
}

// funcName returns a friendly name for a hook function.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "non-function"
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "unknown"
	}

	fullName := f.Name()
	if idx := strings.LastIndex(fullName, "."); idx != -1 {
		fullName = fullName[idx+1:]
	}

	if strings.HasPrefix(fullName, "func") {
		return "anonymous"
	}

	return fullName
}

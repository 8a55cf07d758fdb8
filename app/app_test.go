package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navigation "github.com/goliatone/go-navigation"
	"github.com/goliatone/go-navigation/app"
	"github.com/goliatone/go-navigation/view"
)

func greeting(s *view.Scope) (string, error) {
	return fmt.Sprintf("<h1>hello %v</h1>", s.Globals()["user"]), nil
}

func userPage(s *view.Scope) (string, error) {
	return fmt.Sprintf("<p>user %s</p>", s.Params.Get("id")), nil
}

func static(html string) view.Factory {
	return func(map[string]any) view.Component {
		return view.ComponentFunc(func(*view.Scope) (string, error) { return html, nil })
	}
}

func fn(f view.ComponentFunc) view.Factory {
	return func(map[string]any) view.Component { return f }
}

func newApp(t *testing.T, opts ...app.Option) *app.App {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.State = map[string]any{"user": "ada"}

	a, err := app.New(cfg, opts...)
	require.NoError(t, err)

	require.NoError(t, a.Component("home", fn(greeting)))
	require.NoError(t, a.Component("user", fn(userPage)))
	require.NoError(t, a.Route("/", "home"))
	require.NoError(t, a.Route("/users/:id", "user"))
	return a
}

func TestApp_NavigateRendersIntoRoot(t *testing.T) {
	a := newApp(t)

	require.NoError(t, a.Navigate("/users/7"))
	assert.Equal(t, "<p>user 7</p>", a.Root().Content())
	assert.Equal(t, "/users/7", a.Router().History().CurrentLocation())
	assert.Equal(t, "app", a.Root().ID())
}

func TestApp_SetStateRerendersMounted(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Navigate("/"))
	assert.Equal(t, "<h1>hello ada</h1>", a.Root().Content())

	a.SetState(map[string]any{"user": "grace"})
	assert.Equal(t, "<h1>hello grace</h1>", a.Root().Content())
	assert.Equal(t, "grace", a.State("user", nil))
}

func TestApp_NotFoundKeepsContent(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Navigate("/"))

	var missed string
	a.Router().OnNotFound(func(path string) { missed = path })

	require.NoError(t, a.Navigate("/nowhere"))
	assert.Equal(t, "/nowhere", missed)
	assert.Equal(t, "<h1>hello ada</h1>", a.Root().Content())
	assert.Equal(t, "/", a.Router().History().CurrentLocation())
}

func TestApp_DefaultRouteAndNested(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Component("missing", static("<p>404</p>")))
	require.NoError(t, a.Component("settings", static("<p>settings</p>")))
	a.SetDefaultRoute("missing")
	require.NoError(t, a.NestedRoute("/users/:id", "settings", "settings"))

	require.NoError(t, a.Navigate("/users/3/settings"))
	assert.Equal(t, "<p>settings</p>", a.Root().Content())

	require.NoError(t, a.Navigate("/nowhere"))
	assert.Equal(t, "<p>404</p>", a.Root().Content())
}

func TestApp_MountUsesHistoryLocation(t *testing.T) {
	history := navigation.NewMemoryHistory("/users/42")
	a := newApp(t, app.WithRouterOptions(navigation.WithHistory(history)))

	require.NoError(t, a.Mount())
	assert.Equal(t, "<p>user 42</p>", a.Root().Content())
	assert.Equal(t, []string{"/users/42"}, history.Entries())
}

func TestApp_CustomRootElement(t *testing.T) {
	root := view.NewElement("main")
	a := newApp(t, app.WithRoot(root))

	require.NoError(t, a.Navigate("/users/1"))
	assert.Equal(t, "<p>user 1</p>", root.Content())
	assert.Equal(t, 1, root.Writes())
}

type counterService struct{ n int }

type serviceExtension struct{}

func (serviceExtension) Install(a *app.App) error {
	return a.Register("counter", &counterService{n: 5})
}

type reporter struct {
	errs []error
}

func (r *reporter) Install(*app.App) error { return nil }

func (r *reporter) OnError(err error) { r.errs = append(r.errs, err) }

func TestApp_UseExtensions(t *testing.T) {
	a := newApp(t)
	rep := &reporter{}

	require.NoError(t, a.Use(serviceExtension{}, rep))
	assert.Equal(t, []string{"app_test.serviceExtension", "app_test.reporter"}, a.Extensions())

	svc, err := app.Lookup[*counterService](a.Services(), "counter")
	require.NoError(t, err)
	assert.Equal(t, 5, svc.n)
}

func TestApp_UseStopsOnFailure(t *testing.T) {
	a := newApp(t)
	installed := false

	err := a.Use(
		app.ExtensionFunc(func(*app.App) error { return errors.New("boom") }),
		app.ExtensionFunc(func(*app.App) error { installed = true; return nil }),
	)
	require.Error(t, err)
	assert.True(t, app.IsExtensionError(err))
	assert.False(t, installed)
	assert.Empty(t, a.Extensions())
}

func TestApp_RenderErrorsReachReporters(t *testing.T) {
	a := newApp(t)
	rep := &reporter{}
	require.NoError(t, a.Use(rep))

	var hooked error
	a.OnError(func(err error) { hooked = err })

	require.NoError(t, a.Component("broken", fn(func(*view.Scope) (string, error) {
		return "", errors.New("template exploded")
	})))
	require.NoError(t, a.Route("/broken", "broken"))

	require.NoError(t, a.Navigate("/broken"))
	require.Len(t, rep.errs, 1)
	assert.True(t, navigation.HasTextCode(rep.errs[0], navigation.TextCodeRenderFailed))
	assert.Equal(t, rep.errs[0], hooked)
	assert.Equal(t, "/broken", a.Router().State().Path)
}

func TestApp_RenderPath(t *testing.T) {
	a := newApp(t)

	html, err := a.RenderPath("/users/9", nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>user 9</p>", html)
	assert.Empty(t, a.Root().Content())

	_, err = a.RenderPath("/nowhere", nil)
	require.Error(t, err)
	assert.True(t, navigation.IsNotFound(err))
}

func TestApp_ConfigRoutes(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Root = "shell"
	cfg.DefaultRoute = "home"
	cfg.Routes = []navigation.RouteDefinition{{Pattern: "/about", Handler: "about"}}

	a, err := app.New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Component("home", static("<p>home</p>")))
	require.NoError(t, a.Component("about", static("<p>about</p>")))

	require.NoError(t, a.Navigate("/about"))
	assert.Equal(t, "<p>about</p>", a.Root().Content())
	require.NoError(t, a.Navigate("/else"))
	assert.Equal(t, "<p>home</p>", a.Root().Content())
	assert.Equal(t, "shell", a.Root().ID())
}

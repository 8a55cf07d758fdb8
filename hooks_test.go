package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navigation "github.com/goliatone/go-navigation"
)

func TestHooks_RunAroundRender(t *testing.T) {
	var order []string

	rd := navigation.RendererFunc(func(handler string, _ navigation.Params) error {
		order = append(order, "render:"+handler)
		return nil
	})

	r, err := navigation.New(
		navigation.WithRenderer(rd),
		navigation.WithRoute("/users/:id", "user"),
		navigation.WithHooks(navigation.Hook{
			Name: "trace",
			Before: func(n *navigation.Navigation) {
				order = append(order, "before:"+n.Path)
			},
			After: func(n *navigation.Navigation) {
				order = append(order, "after:"+n.Params.Get("id"))
			},
		}),
	)
	require.NoError(t, err)

	require.NoError(t, r.Navigate("/users/5"))
	assert.Equal(t, []string{"before:/users/5", "render:user", "after:5"}, order)
}

func TestHooks_MatchGlob(t *testing.T) {
	var seen []string

	r, err := navigation.New(
		navigation.WithRoute("/admin/:section", "admin"),
		navigation.WithRoute("/admin/:section/:id", "admin-item"),
		navigation.WithRoute("/public", "public"),
	)
	require.NoError(t, err)

	require.NoError(t, r.Use(
		navigation.Hook{
			Match: "/admin/*",
			Before: func(n *navigation.Navigation) {
				seen = append(seen, "one:"+n.Path)
			},
		},
		navigation.Hook{
			Match: "/admin/**",
			Before: func(n *navigation.Navigation) {
				seen = append(seen, "any:"+n.Path)
			},
		},
	))

	require.NoError(t, r.Navigate("/admin/users"))
	require.NoError(t, r.Navigate("/admin/users/1"))
	require.NoError(t, r.Navigate("/public"))

	assert.Equal(t, []string{
		"one:/admin/users",
		"any:/admin/users",
		"any:/admin/users/1",
	}, seen)
}

func TestHooks_RedirectFromBefore(t *testing.T) {
	h := navigation.NewMemoryHistory()
	rendered := []string{}

	r, err := navigation.New(
		navigation.WithHistory(h),
		navigation.WithRenderer(navigation.RendererFunc(func(handler string, _ navigation.Params) error {
			rendered = append(rendered, handler)
			return nil
		})),
		navigation.WithRoute("/login", "login"),
		navigation.WithRoute("/account", "account"),
		navigation.WithHooks(navigation.Hook{
			Match: "/account",
			Before: func(n *navigation.Navigation) {
				_ = n.Redirect("/login")
			},
		}),
	)
	require.NoError(t, err)

	require.NoError(t, r.Navigate("/account"))

	assert.Equal(t, []string{"login"}, rendered)
	assert.Equal(t, "login", r.State().Handler)
	assert.Equal(t, []string{"/", "/login"}, h.Entries())
}

func TestHooks_RedirectToUnknownPathAbandons(t *testing.T) {
	h := navigation.NewMemoryHistory()
	rendered := []string{}
	var missing []string

	r, err := navigation.New(
		navigation.WithHistory(h),
		navigation.WithRenderer(navigation.RendererFunc(func(handler string, _ navigation.Params) error {
			rendered = append(rendered, handler)
			return nil
		})),
		navigation.WithRoute("/account", "account"),
		navigation.WithHooks(navigation.Hook{
			Before: func(n *navigation.Navigation) {
				_ = n.Redirect("/nowhere")
			},
		}),
	)
	require.NoError(t, err)
	r.OnNotFound(func(path string) { missing = append(missing, path) })

	require.NoError(t, r.Navigate("/account"))

	assert.Empty(t, rendered)
	assert.False(t, r.State().Resolved)
	assert.Equal(t, []string{"/"}, h.Entries())
	assert.Equal(t, []string{"/nowhere"}, missing)
}

func TestHooks_RedirectDuringPopReplaces(t *testing.T) {
	h := navigation.NewMemoryHistory()

	r, err := navigation.New(
		navigation.WithHistory(h),
		navigation.WithRoute("/", "home"),
		navigation.WithRoute("/old", "old"),
		navigation.WithRoute("/new", "new"),
		navigation.WithRoute("/x", "x"),
		navigation.WithHooks(navigation.Hook{
			Match: "/old",
			Before: func(n *navigation.Navigation) {
				if n.Pop {
					_ = n.Redirect("/new")
				}
			},
		}),
	)
	require.NoError(t, err)

	require.NoError(t, r.Navigate("/old"))
	require.NoError(t, r.Navigate("/x"))
	require.True(t, h.Back())

	assert.Equal(t, "new", r.State().Handler)
	assert.Equal(t, []string{"/", "/new", "/x"}, h.Entries())
	assert.Equal(t, 1, h.Index())

	require.True(t, h.Forward())
	assert.Equal(t, "x", r.State().Handler)
}

func TestHooks_PopFlag(t *testing.T) {
	h := navigation.NewMemoryHistory()
	var pops []bool

	r, err := navigation.New(
		navigation.WithHistory(h),
		navigation.WithRoute("/", "home"),
		navigation.WithRoute("/x", "x"),
		navigation.WithHooks(navigation.Hook{
			After: func(n *navigation.Navigation) {
				pops = append(pops, n.Pop)
			},
		}),
	)
	require.NoError(t, err)

	require.NoError(t, r.Navigate("/x"))
	h.Back()

	assert.Equal(t, []bool{false, true}, pops)
}

func TestHooks_Invalid(t *testing.T) {
	r, err := navigation.New()
	require.NoError(t, err)

	err = r.Use(navigation.Hook{Name: "empty"})
	require.Error(t, err)
	assert.True(t, navigation.HasTextCode(err, navigation.TextCodeInvalidHook))

	err = r.Use(navigation.Hook{Match: "[", Before: func(*navigation.Navigation) {}})
	require.Error(t, err)
}

package ssr_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navigation "github.com/goliatone/go-navigation"
	"github.com/goliatone/go-navigation/app"
	"github.com/goliatone/go-navigation/ssr"
	"github.com/goliatone/go-navigation/view"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(app.DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, a.Component("home", func(map[string]any) view.Component {
		return view.ComponentFunc(func(*view.Scope) (string, error) { return "<h1>home</h1>", nil })
	}))
	require.NoError(t, a.Component("user", func(props map[string]any) view.Component {
		return view.ComponentFunc(func(s *view.Scope) (string, error) {
			return "<p>user " + s.Params.Get("id") + " " + s.Props["lang"].(string) + "</p>", nil
		})
	}))
	require.NoError(t, a.Route("/", "home"))
	require.NoError(t, a.Route("/users/:id", "user"))
	return a
}

func langProps(r *http.Request) map[string]any {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}
	return map[string]any{"lang": lang}
}

func TestServer_HTTPRouter(t *testing.T) {
	srv := ssr.New(newApp(t), ssr.Config{Props: langProps})
	router := srv.HTTPRouter()

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{name: "root", target: "/", status: http.StatusOK, body: "<h1>home</h1>"},
		{name: "params", target: "/users/7?lang=es", status: http.StatusOK, body: "<p>user 7 es</p>"},
		{name: "missing", target: "/nowhere", status: http.StatusNotFound, body: "Not Found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestServer_ContentType(t *testing.T) {
	srv := ssr.New(newApp(t))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestServer_Fiber(t *testing.T) {
	srv := ssr.New(newApp(t), ssr.Config{Props: langProps})
	fiberApp := srv.FiberApp()

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/users/3?lang=fr", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<p>user 3 fr</p>", string(body))

	resp, err = fiberApp.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_BasePathAndLayout(t *testing.T) {
	engine, err := view.NewEngine(view.EngineConfig{FS: []fs.FS{fstest.MapFS{
		"layout.html": {Data: []byte(`<main data-path="{{ path }}">{{ content|safe }}</main>`)},
	}}})
	require.NoError(t, err)

	srv := ssr.New(newApp(t), ssr.Config{
		BasePath: "/app",
		Layout:   "layout",
		Engine:   engine,
	})

	body, code, err := srv.Render(context.Background(), "/app", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `<main data-path="/"><h1>home</h1></main>`, body)
}

type failingRenderer struct{ err error }

func (f failingRenderer) RenderPath(string, map[string]any) (string, error) {
	return "", f.err
}

func TestServer_ErrorStatus(t *testing.T) {
	_, code, err := ssr.New(failingRenderer{err: errors.New("boom")}).
		Render(context.Background(), "/", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, code)

	_, code, err = ssr.New(failingRenderer{err: navigation.NewNotFoundError("/x")}).
		Render(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.True(t, navigation.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_ETag(t *testing.T) {
	srv := ssr.New(newApp(t), ssr.Config{ETag: true})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	tag := rec.Header().Get("ETag")
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", tag)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", tag)
	resp, err := srv.FiberApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestServer_PathOutsideBase(t *testing.T) {
	srv := ssr.New(newApp(t), ssr.Config{BasePath: "/app"})

	_, code, err := srv.Render(context.Background(), "/other", nil)
	require.Error(t, err)
	assert.True(t, navigation.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, code)
}

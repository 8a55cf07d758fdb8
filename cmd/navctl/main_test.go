package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navigation "github.com/goliatone/go-navigation"
)

const testConfig = `base_path: /app
default_route: missing
routes:
  - pattern: /
    handler: home
  - pattern: /users/:id
    handler: user
  - pattern: /users/:id/posts/:post
    handler: post
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutes(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "navigation.yaml", testConfig)

	out, err := run(t, "routes", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "PATTERN")
	assert.Contains(t, out, "/users/:id/posts/:post")
	assert.Contains(t, out, "id,post")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "base path: /app")
}

func TestResolve(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "navigation.yaml", testConfig)

	out, err := run(t, "resolve", "/users/7/posts/3", "-c", cfg)
	require.NoError(t, err)
	assert.Equal(t, "handler: post\npattern: /users/:id/posts/:post\nparam id=7\nparam post=3\n", out)

	out, err = run(t, "resolve", "/app/users/9", "--with-base", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "handler: user")

	out, err = run(t, "resolve", "/nowhere", "-c", cfg)
	require.NoError(t, err)
	assert.Equal(t, "handler: missing\npattern: (default)\n", out)
}

func TestResolveNotFound(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "navigation.yaml", "routes:\n  - pattern: /\n    handler: home\n")

	_, err := run(t, "resolve", "/nowhere", "-c", cfg)
	require.Error(t, err)
	assert.True(t, navigation.IsNotFound(err))
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.yaml", testConfig)

	out, err := run(t, "lint", "-c", clean)
	require.NoError(t, err)
	assert.Equal(t, "3 routes ok\n", out)

	shadowed := writeFile(t, dir, "shadowed.yaml", `routes:
  - pattern: /users/:id
    handler: user
  - pattern: /users/:name
    handler: profile
`)
	out, err = run(t, "lint", "-c", shadowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 route problem(s) found")
	assert.Contains(t, out, "/users/:name")
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "navigation.yaml", testConfig)
	templates := filepath.Join(dir, "templates")
	writeFile(t, templates, "home.html", "<h1>home</h1>")
	writeFile(t, templates, "user.html", "<p>user {{ params.id }}</p>")
	writeFile(t, templates, "post.html", "<p>post</p>")
	writeFile(t, templates, "missing.html", "<p>missing</p>")

	out, err := run(t, "render", "/users/12", "-c", cfg, "-t", templates)
	require.NoError(t, err)
	assert.Equal(t, "<p>user 12</p>\n", out)
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "routes", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "navctl dev (none)\n", out)
}

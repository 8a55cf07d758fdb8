package view

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	ppath "path"
	"sort"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"github.com/flosch/pongo2/v6"
	"github.com/gertd/go-pluralize"
	"github.com/gobwas/glob"
	"github.com/gofiber/template/django/v3"
	cfs "github.com/goliatone/go-composite-fs"
	navigation "github.com/goliatone/go-navigation"
	"github.com/goodsign/monday"
)

// EngineConfig configures template loading. Sources listed first take
// precedence, so a development directory can override embedded templates.
type EngineConfig struct {
	// Dir is an OS directory searched before FS.
	Dir string
	FS  []fs.FS
	// Ext is the template extension, ".html" by default.
	Ext    string
	Reload bool
	Debug  bool
	// Preload is a glob of template paths parsed when the engine is built,
	// e.g. "**.html". Empty disables preloading.
	Preload string
	// Locale is the default monday locale used by the date helper.
	Locale string
	Funcs  map[string]any
}

// Engine renders file templates with the django engine.
type Engine struct {
	views  *django.Engine
	fsys   fs.FS
	ext    string
	funcs  map[string]any
	logger navigation.Logger
}

var pluralizer = pluralize.NewClient()

func NewEngine(cfg EngineConfig, lgrs ...navigation.Logger) (*Engine, error) {
	lgr := navigation.DefaultLogger()
	if len(lgrs) > 0 && lgrs[0] != nil {
		lgr = lgrs[0]
	}

	ext := strings.TrimSpace(cfg.Ext)
	if ext == "" {
		ext = ".html"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	sources := make([]fs.FS, 0, len(cfg.FS)+1)
	if cfg.Dir != "" {
		info, err := os.Stat(cfg.Dir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("template directory does not exist: %s", cfg.Dir)
		}
		lgr.Debug("view engine using template directory %s", cfg.Dir)
		sources = append(sources, os.DirFS(cfg.Dir))
	}
	for _, src := range cfg.FS {
		if src != nil {
			sources = append(sources, src)
		}
	}
	if len(sources) == 0 {
		return nil, errors.New("view engine needs a template directory or filesystem")
	}

	var fsys fs.FS = fallbackFS{
		fsys: cfs.NewOverlayFS(sources...),
		ext:  ext,
	}

	views := django.NewPathForwardingFileSystem(http.FS(fsys), ".", ext)
	pongo2.DefaultSet.Options.TrimBlocks = true
	views.Reload(cfg.Reload)
	views.Debug(cfg.Debug)

	e := &Engine{
		views:  views,
		fsys:   fsys,
		ext:    ext,
		logger: lgr,
		funcs:  defaultFuncs(cfg.Locale),
	}
	for name, fn := range cfg.Funcs {
		e.funcs[name] = fn
	}
	views.AddFuncMap(e.funcs)

	if err := views.Load(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	if cfg.Preload != "" {
		if err := e.preload(cfg.Preload); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// TemplateName derives the template name for a component name, so
// "UserProfile" and "user-profile" both map to "user_profile".
func (e *Engine) TemplateName(component string) string {
	return strcase.ToSnake(component)
}

// Render executes template name into w.
func (e *Engine) Render(w io.Writer, name string, data map[string]any) error {
	binding := make(map[string]any, len(data))
	for k, v := range data {
		binding[k] = v
	}
	if err := e.views.Render(w, name, binding); err != nil {
		return newTemplateError(name, err)
	}
	return nil
}

func (e *Engine) RenderString(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Funcs returns a copy of the helpers exposed to templates.
func (e *Engine) Funcs() map[string]any {
	out := make(map[string]any, len(e.funcs))
	for k, v := range e.funcs {
		out[k] = v
	}
	return out
}

// Templates lists template names (without extension) matching pattern.
// An empty pattern lists every template.
func (e *Engine) Templates(pattern string) ([]string, error) {
	var g glob.Glob
	if pattern != "" {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid template pattern %q: %w", pattern, err)
		}
		g = compiled
	}

	var names []string
	err := fs.WalkDir(e.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, e.ext) {
			return nil
		}
		if g != nil && !g.Match(path) {
			return nil
		}
		names = append(names, strings.TrimSuffix(path, e.ext))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

func (e *Engine) preload(pattern string) error {
	names, err := e.Templates(pattern)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := e.views.Render(io.Discard, name, map[string]any{}); err != nil {
			return newTemplateError(name, err)
		}
		e.logger.Debug("view engine preloaded %s", name)
	}
	return nil
}

func defaultFuncs(locale string) map[string]any {
	var loc monday.Locale = monday.LocaleEnUS
	if locale != "" {
		loc = monday.Locale(locale)
	}

	return map[string]any{
		"pluralize": func(word string, count int) string {
			return pluralizer.Pluralize(word, count, true)
		},
		"date": func(val any, layout string) string {
			var t time.Time
			switch v := val.(type) {
			case time.Time:
				t = v
			case string:
				parsed, err := time.Parse(time.RFC3339, v)
				if err != nil {
					return ""
				}
				t = parsed
			default:
				return ""
			}
			return monday.Format(t, layout, loc)
		},
	}
}

// fallbackFS retries lookups with and without the template extension.
type fallbackFS struct {
	fsys fs.FS
	ext  string
}

func (f fallbackFS) Open(name string) (fs.File, error) {
	clean := cleanTemplatePath(name)

	file, err := f.fsys.Open(clean)
	if err == nil || f.ext == "" || !errors.Is(err, fs.ErrNotExist) {
		return file, err
	}

	if !strings.HasSuffix(clean, f.ext) {
		if alt, altErr := f.fsys.Open(clean + f.ext); altErr == nil {
			return alt, nil
		}
	}

	return file, err
}

func (f fallbackFS) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, cleanTemplatePath(name))
}

func (f fallbackFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(f.fsys, cleanTemplatePath(name))
}

func cleanTemplatePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimPrefix(path, "./")
	path = ppath.Clean(path)
	if path == "" {
		return "."
	}
	return path
}

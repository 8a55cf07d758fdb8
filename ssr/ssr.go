package ssr

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	navigation "github.com/goliatone/go-navigation"
	"github.com/goliatone/go-navigation/view"
	"github.com/goliatone/hashid/pkg/hashid"
)

const TextCodeLayoutFailed = "LAYOUT_RENDER_FAILED"

// PathRenderer renders the component routed at path. app.App implements it.
type PathRenderer interface {
	RenderPath(path string, props map[string]any) (string, error)
}

type Config struct {
	// BasePath is removed from request paths before resolving.
	BasePath string
	// Layout is a template that receives the rendered body as "content".
	Layout      string
	Engine      *view.Engine
	ContentType string
	// ETag adds an ETag derived from the page body and answers matching
	// If-None-Match requests with 304.
	ETag   bool
	Props  func(r *http.Request) map[string]any
	Logger navigation.Logger
	Tracer trace.Tracer
}

func DefaultConfig() Config {
	return Config{
		ContentType: "text/html; charset=utf-8",
		Logger:      navigation.DefaultLogger(),
		Tracer:      otel.Tracer(navigation.TracerName),
	}
}

func configDefault(config ...Config) Config {
	def := DefaultConfig()
	if len(config) == 0 {
		return def
	}

	cfg := config[0]

	if cfg.ContentType == "" {
		cfg.ContentType = def.ContentType
	}

	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}

	if cfg.Tracer == nil {
		cfg.Tracer = def.Tracer
	}

	return cfg
}

// Server renders routes to HTML for plain net/http, httprouter and fiber.
type Server struct {
	renderer PathRenderer
	cfg      Config
}

func New(renderer PathRenderer, config ...Config) *Server {
	return &Server{
		renderer: renderer,
		cfg:      configDefault(config...),
	}
}

// Render resolves requestPath and returns the page and its HTTP status.
func (s *Server) Render(ctx context.Context, requestPath string, props map[string]any) (string, int, error) {
	if !navigation.InBase(s.cfg.BasePath, requestPath) {
		return "", http.StatusNotFound, navigation.NewNotFoundError(navigation.NormalizePath(requestPath))
	}
	path := navigation.StripBase(s.cfg.BasePath, requestPath)

	_, span := s.cfg.Tracer.Start(ctx, "navigation.ssr.render", trace.WithAttributes(
		attribute.String("navigation.path", path),
	))
	defer span.End()

	body, err := s.renderer.RenderPath(path, props)
	if err != nil {
		code := statusFromError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Int("http.status_code", code))
		return "", code, err
	}

	if s.cfg.Layout != "" && s.cfg.Engine != nil {
		body, err = s.cfg.Engine.RenderString(s.cfg.Layout, map[string]any{
			"content": body,
			"path":    path,
		})
		if err != nil {
			lerr := goerrors.Wrap(err, goerrors.CategoryInternal, "failed to render layout "+s.cfg.Layout).
				WithCode(http.StatusInternalServerError).
				WithTextCode(TextCodeLayoutFailed)
			span.RecordError(lerr)
			return "", http.StatusInternalServerError, lerr
		}
	}

	return body, http.StatusOK, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var props map[string]any
	if s.cfg.Props != nil {
		props = s.cfg.Props(r)
	}

	body, code, err := s.Render(r.Context(), r.URL.Path, props)
	if err != nil {
		s.logError(r.URL.Path, code, err)
		http.Error(w, http.StatusText(code), code)
		return
	}

	if tag := s.etag(body); tag != "" {
		w.Header().Set("ETag", tag)
		if r.Header.Get("If-None-Match") == tag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", s.cfg.ContentType)
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// Handle is an httprouter.Handle for a catch-all route.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.ServeHTTP(w, r)
}

// HTTPRouter returns a router that serves every GET path.
func (s *Server) HTTPRouter() *httprouter.Router {
	router := httprouter.New()
	router.HandleMethodNotAllowed = true
	router.GET("/*path", s.Handle)
	return router
}

func (s *Server) FiberHandler(c *fiber.Ctx) error {
	var props map[string]any
	if s.cfg.Props != nil {
		req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), c.OriginalURL(), nil)
		if err == nil {
			props = s.cfg.Props(req)
		}
	}

	body, code, err := s.Render(c.UserContext(), c.Path(), props)
	if err != nil {
		s.logError(c.Path(), code, err)
		return c.Status(code).SendString(http.StatusText(code))
	}

	if tag := s.etag(body); tag != "" {
		c.Set(fiber.HeaderETag, tag)
		if c.Get(fiber.HeaderIfNoneMatch) == tag {
			return c.SendStatus(http.StatusNotModified)
		}
	}

	c.Set(fiber.HeaderContentType, s.cfg.ContentType)
	return c.Status(code).SendString(body)
}

// FiberApp returns a fiber app that serves every GET path.
func (s *Server) FiberApp(config ...fiber.Config) *fiber.App {
	app := fiber.New(config...)
	app.Get("/*", s.FiberHandler)
	return app
}

func (s *Server) etag(body string) string {
	if !s.cfg.ETag {
		return ""
	}
	id, err := hashid.New(body)
	if err != nil {
		s.cfg.Logger.Warn("ssr: etag failed: %v", err)
		return ""
	}
	return `"` + id + `"`
}

func (s *Server) logError(path string, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.cfg.Logger.Error("ssr: %s failed: %v", path, err)
		return
	}
	s.cfg.Logger.Warn("ssr: %s responded %d: %v", path, code, err)
}

func statusFromError(err error) int {
	var rich *goerrors.Error
	if stderrors.As(err, &rich) && rich.Code != 0 {
		return rich.Code
	}
	return http.StatusInternalServerError
}

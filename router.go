package navigation

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "github.com/goliatone/go-navigation"

// Renderer produces output for a resolved handler. It owns the lookup of
// handler ids, so a missing handler is reported by the renderer itself.
type Renderer interface {
	Render(handler string, params Params) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(handler string, params Params) error

func (f RendererFunc) Render(handler string, params Params) error {
	return f(handler, params)
}

// NavigationState is the last successfully resolved navigation.
type NavigationState struct {
	Handler  string
	Path     string
	Params   Params
	Pattern  string
	Fallback bool
	// Resolved is false until the first navigation resolves.
	Resolved bool
}

// NavigateOptions controls a single navigation.
type NavigateOptions struct {
	// UpdateHistory writes the resolved location to History. Defaults to true.
	UpdateHistory bool
	// Replace replaces the current entry instead of pushing a new one.
	Replace bool

	pop bool
}

type NavigateOption func(*NavigateOptions)

// WithoutHistory resolves and renders without touching History.
func WithoutHistory() NavigateOption {
	return func(o *NavigateOptions) {
		o.UpdateHistory = false
	}
}

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// Option configures a Router.
type Option func(*Router)

func WithHistory(h History) Option {
	return func(r *Router) {
		r.history = h
	}
}

func WithRenderer(rd Renderer) Option {
	return func(r *Router) {
		r.renderer = rd
	}
}

// WithBasePath sets the prefix added to locations written to History and
// stripped from locations read from it.
func WithBasePath(base string) Option {
	return func(r *Router) {
		r.basePath = normalizeBase(base)
	}
}

func WithRoute(pattern, handler string) Option {
	return func(r *Router) {
		r.pendingRoutes = append(r.pendingRoutes, RouteDefinition{Pattern: pattern, Handler: handler})
	}
}

// WithRoutes registers routes in slice order.
func WithRoutes(routes ...RouteDefinition) Option {
	return func(r *Router) {
		r.pendingRoutes = append(r.pendingRoutes, routes...)
	}
}

func WithDefault(handler string) Option {
	return func(r *Router) {
		r.table.SetDefault(handler)
	}
}

// WithFallbackPath sets the location used when recovering from a failed
// history write by falling back to the default handler. Defaults to "/".
func WithFallbackPath(path string) Option {
	return func(r *Router) {
		r.fallbackPath = NormalizePath(path)
	}
}

func WithLogger(logger Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = tracer
	}
}

// WithErrorHandler receives render failures. By default they are logged.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Router) {
		r.onError = fn
	}
}

func WithHooks(hooks ...Hook) Option {
	return func(r *Router) {
		r.pendingHooks = append(r.pendingHooks, hooks...)
	}
}

// Router resolves paths against a RouteTable, renders the resolved handler
// and keeps History in step with what was rendered.
//
// A Router is driven from a single goroutine. Navigations started from
// inside hooks or renderers nest: the inner navigation completes first and
// the outer one stops without writing History.
type Router struct {
	table        *RouteTable
	history      History
	renderer     Renderer
	basePath     string
	fallbackPath string
	logger       Logger
	tracer       trace.Tracer
	onError      func(error)
	hooks        []Hook

	notFound listeners[string]
	changes  listeners[NavigationState]

	state NavigationState
	seq   uint64
	ctx   context.Context

	pendingRoutes []RouteDefinition
	pendingHooks  []Hook
}

// New creates a Router. Without WithHistory an in-memory history is used.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		table:        NewRouteTable(),
		fallbackPath: "/",
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.logger = getLogger(r.logger)

	if r.history == nil {
		r.history = NewMemoryHistory(WithBase(r.basePath, "/"))
	}

	if r.renderer == nil {
		r.renderer = RendererFunc(func(string, Params) error { return nil })
	}

	if r.tracer == nil {
		r.tracer = otel.Tracer(TracerName)
	}

	if r.onError == nil {
		r.onError = func(err error) {
			r.logger.Error("navigation render failed: %v", err)
		}
	}

	for _, def := range r.pendingRoutes {
		if err := r.table.Register(def.Pattern, def.Handler); err != nil {
			return nil, err
		}
	}
	r.pendingRoutes = nil

	if err := r.Use(r.pendingHooks...); err != nil {
		return nil, err
	}
	r.pendingHooks = nil

	r.history.OnPopNavigation(r.handlePop)

	return r, nil
}

// Route registers pattern for handler.
func (r *Router) Route(pattern, handler string) error {
	return r.table.Register(pattern, handler)
}

func (r *Router) SetDefault(handler string) {
	r.table.SetDefault(handler)
}

// Use appends hooks. Hooks run in the order they were added.
func (r *Router) Use(hooks ...Hook) error {
	compiled := make([]Hook, 0, len(hooks))
	for _, h := range hooks {
		c, err := h.compile()
		if err != nil {
			return err
		}
		compiled = append(compiled, c)
	}
	r.hooks = append(r.hooks, compiled...)
	return nil
}

// OnNotFound subscribes fn to paths that resolved to nothing.
// The returned function removes the subscription.
func (r *Router) OnNotFound(fn func(path string)) func() {
	return r.notFound.add(fn)
}

// OnChange subscribes fn to state changes after each completed navigation.
func (r *Router) OnChange(fn func(NavigationState)) func() {
	return r.changes.add(fn)
}

// State returns a copy of the current navigation state.
func (r *Router) State() NavigationState {
	s := r.state
	if s.Params != nil {
		s.Params = s.Params.Clone()
	}
	return s
}

func (r *Router) Table() *RouteTable {
	return r.table
}

func (r *Router) History() History {
	return r.history
}

func (r *Router) BasePath() string {
	return r.basePath
}

// Resolve looks path up without navigating.
func (r *Router) Resolve(path string) (Resolution, bool) {
	return r.table.Resolve(path)
}

// Start renders the location History currently shows, without writing it
// back.
func (r *Router) Start() error {
	location := r.history.CurrentLocation()
	r.logger.Debug("navigation start at %s", location)
	if !InBase(r.basePath, location) {
		r.outsideBase(location)
		return nil
	}
	return r.navigate(StripBase(r.basePath, location), NavigateOptions{})
}

// Navigate moves to path, a route path without the base path. Paths with no
// route and no default emit a not-found signal and leave the state alone.
// The only error returned is a history failure that could not be
// recovered by falling back to the default handler.
func (r *Router) Navigate(path string, opts ...NavigateOption) error {
	options := NavigateOptions{UpdateHistory: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return r.navigate(path, options)
}

func (r *Router) handlePop(location string) {
	r.logger.Debug("navigation pop to %s", location)
	if !InBase(r.basePath, location) {
		r.outsideBase(location)
		return
	}
	path := StripBase(r.basePath, location)
	if err := r.navigate(path, NavigateOptions{pop: true}); err != nil {
		r.logger.Error("navigation pop to %s failed: %v", location, err)
	}
}

func (r *Router) navigate(path string, o NavigateOptions) error {
	path = NormalizePath(path)

	parent := r.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, span := r.tracer.Start(parent, "navigation.navigate", trace.WithAttributes(
		attribute.String("navigation.path", path),
		attribute.Bool("navigation.pop", o.pop),
		attribute.Bool("navigation.update_history", o.UpdateHistory),
	))
	defer span.End()

	prev := r.ctx
	r.ctx = ctx
	defer func() { r.ctx = prev }()

	res, ok := r.table.Resolve(path)
	if !ok {
		span.SetAttributes(attribute.Bool("navigation.not_found", true))
		r.logger.Warn("navigation: no route for %s", path)
		r.notFound.emit(path)
		return nil
	}

	r.seq++
	seq := r.seq

	nav := &Navigation{
		Path:     path,
		Location: WithBase(r.basePath, path),
		Handler:  res.Handler,
		Params:   res.Params,
		Pattern:  res.Pattern,
		Fallback: res.Fallback,
		Pop:      o.pop,
		Replace:  o.Replace,
		router:   r,
	}
	span.SetAttributes(
		attribute.String("navigation.handler", res.Handler),
		attribute.Bool("navigation.fallback", res.Fallback),
	)

	r.runBefore(seq, nav)
	if r.superseded(seq, nav) {
		return nil
	}

	r.commit(nav)
	r.render(nav.Handler, nav.Params, span)
	if r.superseded(seq, nav) {
		return nil
	}

	if o.UpdateHistory {
		if err := r.writeHistory(nav.Location, o.Replace); err != nil {
			herr := NewHistoryUpdateError(nav.Location, err)
			span.RecordError(herr)
			r.logger.Error("navigation %s history update failed: %v", nav.Location, err)

			if rerr := r.recoverHistory(herr); rerr != nil {
				span.SetStatus(codes.Error, rerr.Error())
				return rerr
			}
			return nil
		}
	}

	r.runAfter(seq, nav)
	if r.superseded(seq, nav) {
		return nil
	}
	r.logger.Debug("navigation %s -> %s %s", nav.ID, nav.Path, nav.Handler)
	r.changes.emit(r.State())
	return nil
}

// outsideBase treats a History location outside the base path as not found.
func (r *Router) outsideBase(location string) {
	r.logger.Warn("navigation: %s is outside base path %s", location, r.basePath)
	r.notFound.emit(NormalizePath(location))
}

// recoverHistory falls back to the default handler at the fallback path.
func (r *Router) recoverHistory(cause error) error {
	def, ok := r.table.Default()
	if !ok {
		return cause
	}

	r.seq++
	seq := r.seq
	path := r.fallbackPath
	nav := &Navigation{
		Path:     path,
		Location: WithBase(r.basePath, path),
		Handler:  def,
		Params:   Params{},
		Fallback: true,
		Replace:  true,
		router:   r,
	}
	r.logger.Warn("navigation recovering with default %s at %s", def, nav.Location)

	r.commit(nav)
	r.render(def, nav.Params, trace.SpanFromContext(r.ctx))
	if r.superseded(seq, nav) {
		return nil
	}

	if err := r.history.ReplaceLocation(nav.Location); err != nil {
		return errors.Join(cause, NewHistoryUpdateError(nav.Location, err))
	}

	r.changes.emit(r.State())
	return nil
}

func (r *Router) writeHistory(location string, replace bool) error {
	if replace {
		return r.history.ReplaceLocation(location)
	}
	return r.history.PushLocation(location)
}

func (r *Router) render(handler string, params Params, span trace.Span) {
	if err := r.renderer.Render(handler, params.Clone()); err != nil {
		rerr := NewRenderError(handler, err)
		span.RecordError(rerr)
		r.onError(rerr)
	}
}

func (r *Router) commit(nav *Navigation) {
	r.state = NavigationState{
		Handler:  nav.Handler,
		Path:     nav.Path,
		Params:   nav.Params.Clone(),
		Pattern:  nav.Pattern,
		Fallback: nav.Fallback,
		Resolved: true,
	}
}

// abandon marks nav as stale so the running navigation stops at its next
// check.
func (r *Router) abandon(nav *Navigation) {
	r.seq++
	r.logger.Debug("navigation to %s abandoned", nav.Path)
}

// superseded reports whether a nested navigation started after seq.
func (r *Router) superseded(seq uint64, nav *Navigation) bool {
	if r.seq == seq {
		return false
	}
	r.logger.Debug("navigation to %s superseded by %s", nav.Path, r.state.Path)
	return true
}

func (r *Router) runBefore(seq uint64, nav *Navigation) {
	for _, h := range r.hooks {
		if r.seq != seq {
			return
		}
		if h.Before != nil && h.matches(nav.Path) {
			h.Before(nav)
		}
	}
}

func (r *Router) runAfter(seq uint64, nav *Navigation) {
	for _, h := range r.hooks {
		if r.seq != seq {
			return
		}
		if h.After != nil && h.matches(nav.Path) {
			h.After(nav)
		}
	}
}

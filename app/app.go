package app

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	navigation "github.com/goliatone/go-navigation"
	"github.com/goliatone/go-navigation/view"
)

const TextCodeExtensionFailed = "EXTENSION_INSTALL_FAILED"

// Config describes an App. The navigation fields are inlined so one YAML
// document configures both.
type Config struct {
	navigation.Config `yaml:",inline"`

	Root  string         `json:"root" yaml:"root"`
	State map[string]any `json:"state" yaml:"state"`
}

func DefaultConfig() Config {
	return Config{
		Config: navigation.DefaultConfig(),
		Root:   "app",
	}
}

// App ties a Router to a component registry, a mount point, shared state
// and services.
type App struct {
	cfg        Config
	router     *navigation.Router
	registry   *view.Registry
	mount      *view.Mount
	root       view.Element
	store      *Store
	services   *Services
	extensions []Extension
	logger     navigation.Logger
	onError    []func(error)
}

type Option func(*options)

type options struct {
	navigation []navigation.Option
	engine     *view.Engine
	root       view.Element
	logger     navigation.Logger
	props      func(handler string) map[string]any
}

// WithRouterOptions forwards options to the underlying Router.
func WithRouterOptions(opts ...navigation.Option) Option {
	return func(o *options) {
		o.navigation = append(o.navigation, opts...)
	}
}

func WithEngine(e *view.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithRoot sets the element components mount into.
func WithRoot(el view.Element) Option {
	return func(o *options) {
		o.root = el
	}
}

func WithLogger(lgr navigation.Logger) Option {
	return func(o *options) {
		o.logger = lgr
	}
}

func WithProps(fn func(handler string) map[string]any) Option {
	return func(o *options) {
		o.props = fn
	}
}

func New(cfg Config, opts ...Option) (*App, error) {
	if cfg.Root == "" {
		cfg.Root = DefaultConfig().Root
	}
	if cfg.FallbackPath == "" {
		cfg.FallbackPath = navigation.DefaultConfig().FallbackPath
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = navigation.DefaultLogger()
	}
	if o.root == nil {
		o.root = view.NewElement(cfg.Root)
	}

	a := &App{
		cfg:      cfg,
		root:     o.root,
		store:    NewStore(cfg.State),
		services: NewServices(),
		logger:   o.logger,
	}

	regOpts := []view.RegistryOption{view.WithGlobals(a.store.Snapshot)}
	if o.engine != nil {
		regOpts = append(regOpts, view.WithEngine(o.engine))
	}
	a.registry = view.NewRegistry(regOpts...)

	mountOpts := []view.MountOption{view.WithMountLogger(a.logger)}
	if o.props != nil {
		mountOpts = append(mountOpts, view.WithProps(o.props))
	}
	a.mount = view.NewMount(a.registry, a.root, mountOpts...)

	navOpts := []navigation.Option{
		navigation.WithRenderer(a.mount),
		navigation.WithLogger(a.logger),
		navigation.WithErrorHandler(a.HandleError),
	}
	navOpts = append(navOpts, o.navigation...)

	router, err := navigation.NewFromConfig(cfg.Config, navOpts...)
	if err != nil {
		return nil, err
	}
	a.router = router

	a.store.Subscribe(func(map[string]any) {
		if err := a.mount.Update(); err != nil {
			a.HandleError(err)
		}
	})

	return a, nil
}

// Component registers a component factory under the handler id routes use.
func (a *App) Component(name string, factory view.Factory) error {
	return a.registry.Register(name, factory)
}

func (a *App) Route(pattern, handler string) error {
	return a.router.Route(pattern, handler)
}

// NestedRoute registers child under parent. Both are joined and normalized.
func (a *App) NestedRoute(parent, child, handler string) error {
	return a.router.Table().RegisterNested(parent, child, handler)
}

func (a *App) SetDefaultRoute(handler string) {
	a.router.SetDefault(handler)
}

func (a *App) Navigate(path string, opts ...navigation.NavigateOption) error {
	return a.router.Navigate(path, opts...)
}

// Hook installs navigation hooks on the router.
func (a *App) Hook(hooks ...navigation.Hook) error {
	return a.router.Use(hooks...)
}

// Mount renders the route for the current history location.
func (a *App) Mount() error {
	a.logger.Info("app: mounting into #%s", a.root.ID())
	return a.router.Start()
}

// Use installs extensions in order and stops at the first failure.
func (a *App) Use(exts ...Extension) error {
	for _, ext := range exts {
		if ext == nil {
			continue
		}
		if err := ext.Install(a); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to install extension %T", ext)).
				WithTextCode(TextCodeExtensionFailed)
		}
		a.extensions = append(a.extensions, ext)
		if r, ok := ext.(ErrorReporter); ok {
			a.onError = append(a.onError, r.OnError)
		}
	}
	return nil
}

// OnError registers fn for errors passed to HandleError.
func (a *App) OnError(fn func(error)) {
	if fn != nil {
		a.onError = append(a.onError, fn)
	}
}

// HandleError logs err and hands it to every error reporter.
func (a *App) HandleError(err error) {
	if err == nil {
		return
	}
	a.logger.Error("app: %v", err)
	for _, fn := range a.onError {
		fn(err)
	}
}

// SetState merges patch into the store and re-renders the mounted component.
func (a *App) SetState(patch map[string]any) {
	a.store.Set(patch)
}

func (a *App) State(key string, def any) any {
	return a.store.Get(key, def)
}

// Register adds a named service.
func (a *App) Register(key string, svc any) error {
	return a.services.Register(key, svc)
}

// RenderPath resolves path and renders its component to a string without
// touching history or the mount point.
func (a *App) RenderPath(path string, props map[string]any) (string, error) {
	res, ok := a.router.Resolve(path)
	if !ok {
		return "", navigation.NewNotFoundError(path)
	}
	return a.registry.RenderToString(res.Handler, res.Params, props)
}

func (a *App) Router() *navigation.Router {
	return a.router
}

func (a *App) Registry() *view.Registry {
	return a.registry
}

func (a *App) Store() *Store {
	return a.store
}

func (a *App) Services() *Services {
	return a.services
}

func (a *App) Root() view.Element {
	return a.root
}

func (a *App) Config() Config {
	return a.cfg
}

// Extensions lists the installed extension types.
func (a *App) Extensions() []string {
	names := make([]string, 0, len(a.extensions))
	for _, ext := range a.extensions {
		names = append(names, strings.TrimPrefix(fmt.Sprintf("%T", ext), "*"))
	}
	return names
}

// IsExtensionError reports whether err came from a failed Install.
func IsExtensionError(err error) bool {
	return navigation.HasTextCode(err, TextCodeExtensionFailed)
}

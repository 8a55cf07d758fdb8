package navigation

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v2"
)

// Config is the declarative form of a Router setup.
//
//	base_path: /app
//	default_route: home
//	routes:
//	  - pattern: /users/:id
//	    handler: user
type Config struct {
	BasePath     string            `json:"base_path" yaml:"base_path"`
	DefaultRoute string            `json:"default_route" yaml:"default_route"`
	FallbackPath string            `json:"fallback_path" yaml:"fallback_path"`
	Routes       []RouteDefinition `json:"routes" yaml:"routes"`
}

// DefaultConfig holds the values used for fields a config leaves empty.
func DefaultConfig() Config {
	return Config{
		FallbackPath: "/",
	}
}

// LoadConfig decodes YAML from r and fills missing fields from DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return Config{}, fmt.Errorf("failed to read navigation config: %w", err)
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(buf.Bytes(), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode navigation config: %w", err)
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("failed to apply navigation config defaults: %w", err)
	}

	for i, route := range cfg.Routes {
		if route.Pattern == "" || route.Handler == "" {
			return Config{}, fmt.Errorf("navigation config route %d: pattern and handler are required", i)
		}
	}

	return cfg, nil
}

// LoadConfigFile reads a YAML config from path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// Options converts the config into Router options.
func (c Config) Options() []Option {
	opts := []Option{
		WithBasePath(c.BasePath),
		WithRoutes(c.Routes...),
	}
	if c.FallbackPath != "" {
		opts = append(opts, WithFallbackPath(c.FallbackPath))
	}
	if c.DefaultRoute != "" {
		opts = append(opts, WithDefault(c.DefaultRoute))
	}
	return opts
}

// NewFromConfig creates a Router from cfg. Extra options are applied after
// the ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Router, error) {
	return New(append(cfg.Options(), opts...)...)
}

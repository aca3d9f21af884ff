package webdispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds factory configuration. It can be built in code or loaded from
// YAML:
//
//	appNamespace: Shop
//	fallbackNamespaces: [Core]
//	cacheSize: 512
//	recoverPanics: true
type Config struct {
	// AppNamespace is the root for handlers registered without a plugin.
	AppNamespace string `yaml:"appNamespace"`

	// FallbackNamespaces are consulted, in order, when the application does
	// not define a handler.
	FallbackNamespaces []string `yaml:"fallbackNamespaces"`

	// CacheSize bounds the type lookup cache. Zero disables caching.
	CacheSize int `yaml:"cacheSize"`

	// RecoverPanics turns handler panics into errors wrapping ErrPanic.
	RecoverPanics bool `yaml:"recoverPanics"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AppNamespace:  DefaultAppNamespace,
		RecoverPanics: true,
	}
}

// Roots returns the registry roots: the application namespace followed by
// the fallbacks.
func (c Config) Roots() []string {
	app := c.AppNamespace
	if app == "" {
		app = DefaultAppNamespace
	}
	return append([]string{app}, c.FallbackNamespaces...)
}

// NewRegistry returns an empty Registry using c's roots.
func (c Config) NewRegistry() *Registry {
	return NewRegistry(c.Roots()...)
}

// Validate checks c for values that cannot work.
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("cacheSize must not be negative, got %d", c.CacheSize)
	}
	for _, ns := range c.Roots() {
		if !validRoot(ns) {
			return fmt.Errorf("invalid namespace %q", ns)
		}
	}
	return nil
}

// validRoot reports whether ns can be used as a registry root. Roots may be
// nested ("Vendor/Shop") but each segment must be non-empty and free of '\'
// and of '.', which separates a plugin from a handler name.
func validRoot(ns string) bool {
	for _, seg := range strings.Split(ns, Separator) {
		if seg == "" || strings.ContainsAny(seg, `.\`) {
			return false
		}
	}
	return true
}

// LoadConfig reads a YAML configuration from r on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

package webdispatch

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultAppNamespace is the root under which handlers registered without a
// plugin live.
const DefaultAppNamespace = "App"

// Constructor builds a handler bound to req.
type Constructor func(req Request) Handler

// Kind describes what a resolved Type is.
type Kind uint8

const (
	// KindConcrete types can be instantiated.
	KindConcrete Kind = iota
	// KindAbstract types exist but cannot be instantiated.
	KindAbstract
	// KindInterface types only describe a capability set.
	KindInterface
)

func (k Kind) String() string {
	switch k {
	case KindConcrete:
		return "concrete"
	case KindAbstract:
		return "abstract"
	case KindInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// Type describes a resolvable handler type.
type Type struct {
	// Name is the fully qualified type name, e.g.
	// "App/Controller/Admin/ArticlesController".
	Name string
	Kind Kind
	New  Constructor
}

// Resolver maps a handler lookup name to a type.
//
// name is "Name" or "Plugin.Name", namespace is the handler namespace (e.g.
// "Controller/Admin") and category is the type category, which is also the
// type name suffix. Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(name, namespace, category string) (*Type, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name, namespace, category string) (*Type, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name, namespace, category string) (*Type, bool) {
	return f(name, namespace, category)
}

// Registry is a Resolver backed by an explicit table of handler types,
// filled at startup.
//
// Handlers are registered by path, "[Plugin.][prefix/]Name":
//
//	reg := webdispatch.NewRegistry()
//	reg.Register("Articles", newArticles)          // App/Controller/ArticlesController
//	reg.Register("Admin/Api/Users", newUsers)      // App/Controller/Admin/Api/UsersController
//	reg.Register("Blog.Posts", newPosts)           // Blog/Controller/PostsController
//	reg.RegisterAbstract("Admin/Base")
//
// Lookups without a plugin try each root passed to NewRegistry in order.
// Lookups with a plugin only consult that plugin.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	roots []string
	types map[string]*Type
}

// NewRegistry returns an empty registry. The first root is the application
// namespace; the rest are fallbacks consulted when the application does not
// define a handler. With no roots, DefaultAppNamespace is used.
func NewRegistry(roots ...string) *Registry {
	if len(roots) == 0 {
		roots = []string{DefaultAppNamespace}
	}
	return &Registry{
		roots: append([]string(nil), roots...),
		types: make(map[string]*Type),
	}
}

// Register adds a concrete handler type. It panics if ctor is nil, the name
// is not a valid handler name, or the path is already registered.
func (r *Registry) Register(path string, ctor Constructor) {
	if ctor == nil {
		panic("webdispatch: nil constructor for " + path)
	}
	r.add(path, KindConcrete, ctor)
}

// RegisterAbstract records a type that exists but cannot be instantiated.
func (r *Registry) RegisterAbstract(path string) {
	r.add(path, KindAbstract, nil)
}

// RegisterInterface records an interface-only type.
func (r *Registry) RegisterInterface(path string) {
	r.add(path, KindInterface, nil)
}

func (r *Registry) add(path string, kind Kind, ctor Constructor) {
	plugin, prefix, name := splitPath(path)
	if !ValidName(name) {
		panic(fmt.Sprintf("webdispatch: invalid handler name %q in %q", name, path))
	}
	root := plugin
	if root == "" {
		root = r.roots[0]
	}
	key := typeKey(root, Namespace(prefix), name, Category)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.types[key]; dup {
		panic("webdispatch: duplicate registration for " + key)
	}
	r.types[key] = &Type{Name: key, Kind: kind, New: ctor}
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name, namespace, category string) (*Type, bool) {
	plugin, name := splitPlugin(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if plugin != "" {
		t, ok := r.types[typeKey(plugin, namespace, name, category)]
		return t, ok
	}
	for _, root := range r.roots {
		if t, ok := r.types[typeKey(root, namespace, name, category)]; ok {
			return t, true
		}
	}
	return nil, false
}

// Names returns every registered type name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

func typeKey(root, namespace, name, category string) string {
	return root + Separator + namespace + Separator + name + category
}

// splitPlugin splits "Plugin.Name" at the last dot. Plugin names may contain
// separators ("Vendor/Blog.Posts").
func splitPlugin(name string) (plugin, rest string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func splitPath(path string) (plugin, prefix, name string) {
	plugin, rest := splitPlugin(path)
	if i := strings.LastIndex(rest, Separator); i >= 0 {
		return plugin, rest[:i], rest[i+1:]
	}
	return plugin, "", rest
}

// CachedResolver memoizes another Resolver's answers, misses included, in a
// bounded LRU cache. It is safe for concurrent use. Answers are cached for
// the life of the process; call Purge after changing the wrapped resolver.
type CachedResolver struct {
	inner Resolver
	cache *lru.Cache[lookupKey, *Type]
}

type lookupKey struct {
	name, namespace, category string
}

// NewCachedResolver wraps inner with a cache holding up to size lookups.
func NewCachedResolver(inner Resolver, size int) (*CachedResolver, error) {
	cache, err := lru.New[lookupKey, *Type](size)
	if err != nil {
		return nil, fmt.Errorf("create resolver cache: %w", err)
	}
	return &CachedResolver{inner: inner, cache: cache}, nil
}

// Resolve implements Resolver.
func (c *CachedResolver) Resolve(name, namespace, category string) (*Type, bool) {
	key := lookupKey{name: name, namespace: namespace, category: category}
	if t, ok := c.cache.Get(key); ok {
		return t, t != nil
	}
	t, ok := c.inner.Resolve(name, namespace, category)
	if !ok || t == nil {
		c.cache.Add(key, nil)
		return nil, false
	}
	c.cache.Add(key, t)
	return t, true
}

// Purge drops every cached answer.
func (c *CachedResolver) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached answers.
func (c *CachedResolver) Len() int {
	return c.cache.Len()
}

package discovery

import (
	"path/filepath"
	"strings"
)

// Defaults for a new Environment.
const (
	DefaultPrefix = "generator-"
	EntryFile     = "addon.yaml"
)

// DefaultLookups are the package-relative directories searched for
// sub-generators, in order.
var DefaultLookups = []string{".", "generators", "lib/generators"}

// Environment holds the namespace registrations of one run. The first
// registration of a namespace wins.
type Environment struct {
	prefix  string
	lookups []string

	entries []Entry
	index   map[string]int
}

// Option configures an Environment.
type Option func(*Environment)

// WithPrefix sets the package directory prefix.
func WithPrefix(prefix string) Option {
	return func(e *Environment) { e.prefix = prefix }
}

// WithLookups replaces the lookup suffixes.
func WithLookups(lookups ...string) Option {
	return func(e *Environment) { e.lookups = lookups }
}

// NewEnvironment returns an empty Environment.
func NewEnvironment(opts ...Option) *Environment {
	e := &Environment{
		prefix:  DefaultPrefix,
		lookups: DefaultLookups,
		index:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register records path under namespace. An empty namespace is derived from
// path. It reports the namespace used and whether the entry was added; a
// namespace that is already registered keeps its first path.
func (e *Environment) Register(path, namespace string) (string, bool) {
	if namespace == "" {
		namespace = e.Namespace(path)
	}
	return e.register(Entry{Namespace: namespace, Path: path})
}

func (e *Environment) register(entry Entry) (string, bool) {
	if _, ok := e.index[entry.Namespace]; ok {
		return entry.Namespace, false
	}
	e.index[entry.Namespace] = len(e.entries)
	e.entries = append(e.entries, entry)
	return entry.Namespace, true
}

// Namespaces returns the registered namespaces in registration order.
func (e *Environment) Namespaces() []string {
	out := make([]string, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.Namespace
	}
	return out
}

// Entries returns a copy of the registrations in order.
func (e *Environment) Entries() []Entry {
	return append([]Entry(nil), e.entries...)
}

// Get returns the entry registered for namespace.
func (e *Environment) Get(namespace string) (Entry, bool) {
	i, ok := e.index[namespace]
	if !ok {
		return Entry{}, false
	}
	return e.entries[i], true
}

// Namespace derives a namespace from an entry directory such as
// ".../generator-drupal/generators/web-starter": the package name without its
// prefix, then the sub-generator name. A sub-generator called "app" is the
// package's default and is addressed by the package name alone.
func (e *Environment) Namespace(entryDir string) string {
	clean := filepath.ToSlash(filepath.Clean(entryDir))
	sub := pathBase(clean)
	pkgDir := e.trimLookup(pathDir(clean))
	pkg := strings.TrimPrefix(pathBase(pkgDir), e.prefix)

	if sub == "app" {
		return pkg
	}
	return pkg + ":" + sub
}

// trimLookup strips the longest lookup suffix from a slash-separated dir.
func (e *Environment) trimLookup(dir string) string {
	best := ""
	for _, l := range e.lookups {
		l = strings.Trim(filepath.ToSlash(l), "/")
		if l == "" || l == "." {
			continue
		}
		if strings.HasSuffix(dir, "/"+l) && len(l) > len(best) {
			best = l
		}
	}
	if best == "" {
		return dir
	}
	return strings.TrimSuffix(dir, "/"+best)
}

func pathBase(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func pathDir(p string) string {
	if i := strings.LastIndex(p, "/"); i > 0 {
		return p[:i]
	}
	return "."
}

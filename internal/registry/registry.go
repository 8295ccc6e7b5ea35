package registry

// Entry is one key/value pair from an enumeration, in insertion order.
type Entry[V any] struct {
	Key   string
	Value V
}

// ordered is a map that remembers first-insertion order. Overwriting a key
// replaces its value but keeps its position.
type ordered[V any] struct {
	keys   []string
	values map[string]V
}

func newOrdered[V any]() *ordered[V] {
	return &ordered[V]{values: make(map[string]V)}
}

func (o *ordered[V]) get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *ordered[V]) set(key string, value V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *ordered[V]) entries() []Entry[V] {
	out := make([]Entry[V], 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, Entry[V]{Key: k, Value: o.values[k]})
	}
	return out
}

// Registry holds the contributions add-ons publish during one scaffold run.
// It has two independent namespaces: plugins (arbitrary artifacts) and
// dependencies (package name to version range). The last writer for a key
// wins; values are never merged.
//
// A Registry is not safe for concurrent use. Add-ons run one at a time.
type Registry struct {
	plugins      *ordered[any]
	dependencies *ordered[string]
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		plugins:      newOrdered[any](),
		dependencies: newOrdered[string](),
	}
}

// Plugin returns the artifact registered under name.
func (r *Registry) Plugin(name string) (any, bool) {
	return r.plugins.get(name)
}

// AddPlugin registers value under name, replacing any previous value.
func (r *Registry) AddPlugin(name string, value any) {
	r.plugins.set(name, value)
}

// Plugins enumerates all plugin contributions in insertion order.
func (r *Registry) Plugins() []Entry[any] {
	return r.plugins.entries()
}

// DevDependency returns the version range registered for a package.
func (r *Registry) DevDependency(name string) (string, bool) {
	return r.dependencies.get(name)
}

// AddDevDependency records a version range for a package, replacing any
// previous range.
func (r *Registry) AddDevDependency(name, versionRange string) {
	r.dependencies.set(name, versionRange)
}

// DevDependencies enumerates all dependency contributions in insertion order.
func (r *Registry) DevDependencies() []Entry[string] {
	return r.dependencies.entries()
}

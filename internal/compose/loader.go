package compose

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/webstarter-labs/webstarter/internal/manifest"
)

// ErrUnknownAddon is returned when no loader knows a namespace.
var ErrUnknownAddon = errors.New("unknown add-on")

// Addon is the entry point of an add-on.
type Addon interface {
	Run(ctx context.Context, host Host) error
}

// AddonFunc adapts a function to Addon.
type AddonFunc func(ctx context.Context, host Host) error

// Run calls f.
func (f AddonFunc) Run(ctx context.Context, host Host) error { return f(ctx, host) }

// Loader resolves a namespace to an Addon.
type Loader interface {
	Load(namespace string) (Addon, error)
}

// BuiltinLoader serves add-ons compiled into the binary.
type BuiltinLoader map[string]func() Addon

// Load implements Loader.
func (b BuiltinLoader) Load(namespace string) (Addon, error) {
	ctor, ok := b[namespace]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAddon, namespace)
	}
	return ctor(), nil
}

// Namespaces lists the built-in namespaces, sorted.
func (b BuiltinLoader) Namespaces() []string {
	out := make([]string, 0, len(b))
	for ns := range b {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// DiscoveredLoader serves declarative add-ons by the directory discovery
// registered them at.
type DiscoveredLoader map[string]string

// Load implements Loader.
func (d DiscoveredLoader) Load(namespace string) (Addon, error) {
	dir, ok := d[namespace]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAddon, namespace)
	}
	m, err := manifest.LoadAddon(filepath.Join(dir, manifest.AddonFile))
	if err != nil {
		return nil, err
	}
	return &Declarative{Manifest: m, Dir: dir}, nil
}

// ChainLoader tries each loader in order and returns the first hit. Errors
// other than ErrUnknownAddon stop the search.
type ChainLoader []Loader

// Load implements Loader.
func (c ChainLoader) Load(namespace string) (Addon, error) {
	for _, l := range c {
		a, err := l.Load(namespace)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrUnknownAddon) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAddon, namespace)
}

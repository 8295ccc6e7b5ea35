package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webstarter-labs/webstarter/internal/output"
	"github.com/webstarter-labs/webstarter/internal/platform"
)

// FindPackages returns the add-on package directories directly under roots,
// in root order and then by name. Roots that do not exist are skipped.
func (e *Environment) FindPackages(roots []string) ([]string, error) {
	var pkgs []string
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading add-on root %s: %w", root, err)
		}
		for _, entry := range entries {
			if !strings.HasPrefix(entry.Name(), e.prefix) {
				continue
			}
			p := filepath.Join(root, entry.Name())
			// Linked packages show up as symlinks; follow them.
			if info, err := os.Stat(p); err != nil || !info.IsDir() {
				continue
			}
			pkgs = append(pkgs, p)
		}
	}
	return pkgs, nil
}

// candidate is a lookup directory and the package it belongs to.
type candidate struct {
	pkg string
	dir string
}

// candidateDirs joins every package with every lookup suffix.
func (e *Environment) candidateDirs(pkgs []string) []candidate {
	var out []candidate
	for _, l := range e.lookups {
		for _, pkg := range pkgs {
			out = append(out, candidate{pkg: pkg, dir: filepath.Join(pkg, filepath.FromSlash(l))})
		}
	}
	return out
}

// canonicalOr resolves p, falling back to p itself.
func canonicalOr(p string) string {
	if real, err := platform.Canonical(p); err == nil {
		return real
	}
	return p
}

// entryDirs returns the immediate subdirectories of dir holding an entry
// file, sorted by name. A missing dir yields nothing.
func entryDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []string
	for _, entry := range entries {
		sub := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(filepath.Join(sub, EntryFile)); err != nil {
			continue
		}
		out = append(out, sub)
	}
	sort.Strings(out)
	return out, nil
}

// Lookup scans roots and registers every sub-generator found. The namespace
// comes from where the entry was found; the canonical path is what is stored.
func (e *Environment) Lookup(roots []string) error {
	pkgs, err := e.FindPackages(roots)
	if err != nil {
		return err
	}
	for _, c := range e.candidateDirs(pkgs) {
		subs, err := entryDirs(c.dir)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			real, err := platform.Canonical(sub)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", sub, err)
			}
			if ns, added := e.register(Entry{Namespace: e.Namespace(sub), Path: real, Package: canonicalOr(c.pkg)}); added {
				output.Debug("registered add-on", "namespace", ns, "path", real)
			}
		}
	}
	return nil
}

// LookupLocal scans roots after Lookup has run. Namespaces registered before
// the call are never re-registered. An entry reached through a symlink is
// namespaced by the path it was found at, since its canonical location need
// not follow the package layout.
func (e *Environment) LookupLocal(roots []string) error {
	known := make(map[string]bool, len(e.entries))
	for _, ns := range e.Namespaces() {
		known[ns] = true
	}

	pkgs, err := e.FindPackages(roots)
	if err != nil {
		return err
	}
	for _, c := range e.candidateDirs(pkgs) {
		subs, err := entryDirs(c.dir)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			nominal, err := filepath.Abs(sub)
			if err != nil {
				return err
			}
			real, err := platform.Canonical(nominal)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", sub, err)
			}

			var ns string
			if real != nominal {
				ns = e.Namespace(nominal)
			} else {
				ns = e.Namespace(real)
			}
			if known[ns] {
				output.Debug("skipping local add-on, already registered", "namespace", ns, "path", real)
				continue
			}
			e.register(Entry{Namespace: ns, Path: real, Package: canonicalOr(c.pkg)})
		}
	}
	return nil
}

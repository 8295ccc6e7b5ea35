package registry

import (
	"reflect"
	"testing"
)

func TestPluginsLastWriterWins(t *testing.T) {
	r := New()
	r.AddPlugin("grunt", map[string]string{"task": "build"})
	r.AddPlugin("theme", "gesso")
	r.AddPlugin("grunt", "replaced")

	got, ok := r.Plugin("grunt")
	if !ok || got != "replaced" {
		t.Errorf("Plugin(grunt) = %v, %v; want replaced, true", got, ok)
	}

	entries := r.Plugins()
	if len(entries) != 2 {
		t.Fatalf("Plugins() returned %d entries, want 2", len(entries))
	}
	// Overwriting keeps the original position.
	if entries[0].Key != "grunt" || entries[1].Key != "theme" {
		t.Errorf("Plugins() order = [%s %s], want [grunt theme]", entries[0].Key, entries[1].Key)
	}
}

func TestPluginAbsent(t *testing.T) {
	r := New()
	if v, ok := r.Plugin("missing"); ok || v != nil {
		t.Errorf("Plugin(missing) = %v, %v; want nil, false", v, ok)
	}
	if v, ok := r.DevDependency("missing"); ok || v != "" {
		t.Errorf("DevDependency(missing) = %q, %v; want empty, false", v, ok)
	}
}

func TestDevDependenciesInsertionOrder(t *testing.T) {
	r := New()
	r.AddDevDependency("b", "~2.3")
	r.AddDevDependency("a", "^1.0")
	r.AddDevDependency("c", "*")

	want := []Entry[string]{
		{Key: "b", Value: "~2.3"},
		{Key: "a", Value: "^1.0"},
		{Key: "c", Value: "*"},
	}
	if got := r.DevDependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("DevDependencies() = %v, want %v", got, want)
	}
}

func TestNamespacesAreIndependent(t *testing.T) {
	r := New()
	r.AddPlugin("shared", "plugin")
	r.AddDevDependency("shared", "^1.0")

	p, _ := r.Plugin("shared")
	d, _ := r.DevDependency("shared")
	if p != "plugin" || d != "^1.0" {
		t.Errorf("namespaces collided: plugin=%v dependency=%q", p, d)
	}
}

func TestEnumerationIsSnapshot(t *testing.T) {
	r := New()
	r.AddDevDependency("a", "^1.0")
	entries := r.DevDependencies()
	entries[0].Value = "mutated"

	if v, _ := r.DevDependency("a"); v != "^1.0" {
		t.Errorf("mutating enumeration changed registry: %q", v)
	}
}

package answers

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	a := Defaults("generator-web-starter", "1.2.0", "1.1.x")

	if got := a.String(KeyRefspec); got != "1.1.x" {
		t.Errorf("refspec = %q, want 1.1.x", got)
	}
	if got := a.Strings(KeyPlugins); len(got) != 0 {
		t.Errorf("plugins = %v, want empty", got)
	}
	pf, ok := a[KeyPackageFile].(map[string]any)
	if !ok {
		t.Fatalf("package_file has type %T", a[KeyPackageFile])
	}
	dd := pf["devDependencies"].(map[string]any)
	if dd["generator-web-starter"] != "1.2.0" {
		t.Errorf("package_file.devDependencies = %v", dd)
	}
}

func TestStringsConversions(t *testing.T) {
	a := Answers{
		"typed":  []string{"a", "b"},
		"json":   []any{"c", "d"},
		"single": "e",
		"empty":  "",
	}
	tests := map[string][]string{
		"typed":   {"a", "b"},
		"json":    {"c", "d"},
		"single":  {"e"},
		"empty":   nil,
		"missing": nil,
	}
	for key, want := range tests {
		if got := a.Strings(key); !reflect.DeepEqual(got, want) {
			t.Errorf("Strings(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestSetDefaultKeepsExisting(t *testing.T) {
	a := Answers{"solr": false}
	if a.SetDefault("solr", true) {
		t.Error("SetDefault overwrote an existing key")
	}
	if a.Bool("solr") {
		t.Error("solr changed")
	}
	if !a.SetDefault("cmi", true) || !a.Bool("cmi") {
		t.Error("SetDefault did not set an absent key")
	}
}

func TestSharedByReference(t *testing.T) {
	a := Answers{}
	mutate := func(x Answers) { x["seen"] = true }
	mutate(a)
	if !a.Bool("seen") {
		t.Error("mutation through a copy of the map header was not visible")
	}
}

func TestLoadMissingFile(t *testing.T) {
	a, err := Load(t.TempDir(), "generator-web-starter")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(a) != 0 {
		t.Errorf("Load() = %v, want empty", a)
	}
}

func TestSaveLoadRoundTripPreservesForeignSections(t *testing.T) {
	dir := t.TempDir()
	existing := `{
  "generator-other": {"keep": "me"},
  "generator-web-starter": {"repository": "git@old"}
}`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	err := Save(dir, "generator-web-starter", Answers{
		"name":    "My Project",
		"plugins": []string{"drupal:web-starter"},
		"refspec": "1.1.x",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(dir, "generator-web-starter")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.String("name") != "My Project" {
		t.Errorf("name = %q", got.String("name"))
	}
	if got.String("repository") != "git@old" {
		t.Errorf("repository = %q, existing key in section was dropped", got.String("repository"))
	}
	if p := got.Strings("plugins"); len(p) != 1 || p[0] != "drupal:web-starter" {
		t.Errorf("plugins = %v", p)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, FileName))
	if !strings.Contains(string(raw), `"keep": "me"`) {
		t.Errorf("foreign section lost:\n%s", raw)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, "generator-web-starter"); err == nil {
		t.Error("Load accepted invalid JSON")
	}
}

func TestEscapePath(t *testing.T) {
	if got := escapePath("a.b"); got != `a\.b` {
		t.Errorf("escapePath(a.b) = %q", got)
	}
	if got := escapePath("generator-web-starter"); got != "generator-web-starter" {
		t.Errorf("escapePath changed a plain key: %q", got)
	}
}

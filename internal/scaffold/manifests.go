package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
	"github.com/webstarter-labs/webstarter/internal/answers"
	"github.com/webstarter-labs/webstarter/internal/registry"
	"github.com/webstarter-labs/webstarter/internal/transfer"
)

// dependencySeparator joins dependency lines at package.json's indentation.
const dependencySeparator = ",\n    "

// Result holds the outcome of rendering the manifests.
type Result struct {
	OutputDir string
	Files     []string
}

// FormatDependencies renders dependencies as package.json lines in
// enumeration order: "a": "^1.0",\n    "b": "~2.3".
func FormatDependencies(deps []registry.Entry[string]) string {
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		lines = append(lines, jsonString(d.Key)+": "+jsonString(d.Value))
	}
	return strings.Join(lines, dependencySeparator)
}

// SelfDependencyRange is the range a generated project pins this tool to:
// "~<version>", or "*" for a version that is not semver (development
// builds).
func SelfDependencyRange(version string) string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "*"
	}
	return "~" + v.String()
}

// RenderManifests writes Gemfile, package.json and bower.json into destDir.
// It mutates ans the way later readers expect: dev_dependencies holds the
// formatted block and name holds the machine name once package.json is
// rendered. The Gemfile sees the name as entered.
func RenderManifests(ans answers.Answers, deps []registry.Entry[string], destDir string) (*Result, error) {
	ans.SetDefault(answers.KeyName, "")
	ans.SetDefault(answers.KeyRepository, "")
	ans.SetDefault("gems", []string{})

	res := &Result{OutputDir: destDir}
	render := func(name string, validateJSON bool) error {
		if err := renderManifest(name, ans, filepath.Join(destDir, name), validateJSON); err != nil {
			return err
		}
		res.Files = append(res.Files, name)
		return nil
	}

	if err := render("Gemfile", false); err != nil {
		return res, err
	}

	ans[answers.KeyDevDependencies] = FormatDependencies(deps)
	ans[answers.KeyName] = MachineName(ans.String(answers.KeyName))
	if err := render("package.json", true); err != nil {
		return res, err
	}

	ans[answers.KeyName] = MachineName(ans.String(answers.KeyName))
	if err := render("bower.json", true); err != nil {
		return res, err
	}

	return res, nil
}

func renderManifest(name string, ans answers.Answers, dst string, validateJSON bool) error {
	tmplBytes, err := fs.ReadFile(templateFS, "templates/"+name+".tmpl")
	if err != nil {
		return fmt.Errorf("reading template %s: %w", name, err)
	}

	r := &transfer.Renderer{
		Data:  map[string]any(ans),
		Funcs: template.FuncMap{"json": jsonString},
	}
	out, err := r.Render(name, tmplBytes)
	if err != nil {
		return err
	}

	if validateJSON && !gjson.ValidBytes(out) {
		return fmt.Errorf("rendered %s is not valid JSON", name)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// jsonString quotes v as a JSON string without HTML escaping, so ranges
// like ">=1.0 <2.0" stay readable.
func jsonString(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fmt.Sprint(v)); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

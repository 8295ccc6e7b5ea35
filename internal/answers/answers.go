package answers

import (
	"fmt"
	"sort"
)

// Answers is the merged configuration that drives every rendering step of a
// run. It is a map so that every holder shares one record: a value set by an
// add-on is visible to the manifest templates rendered after it.
type Answers map[string]any

// Well-known keys.
const (
	KeyName            = "name"
	KeyRepository      = "repository"
	KeyPlugins         = "plugins"
	KeyRefspec         = "refspec"
	KeyThemePath       = "theme_path"
	KeyBuildPath       = "build_path"
	KeyPackageFile     = "package_file"
	KeyDevDependencies = "dev_dependencies"
)

// Defaults returns the base answers every run starts from.
func Defaults(toolPackage, toolVersion, refspec string) Answers {
	return Answers{
		KeyPlugins:   []string{},
		KeyRefspec:   refspec,
		KeyThemePath: "",
		KeyBuildPath: "",
		KeyPackageFile: map[string]any{
			"devDependencies": map[string]any{toolPackage: toolVersion},
		},
	}
}

// String returns the value under key formatted as a string, or "" if unset.
func (a Answers) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Strings returns a list value. Lists decoded from JSON arrive as []any.
func (a Answers) Strings(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Bool returns a boolean value, false when unset or not a bool.
func (a Answers) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Has reports whether key is present.
func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// SetDefault sets key only when it is absent and reports whether it did.
func (a Answers) SetDefault(key string, value any) bool {
	if _, ok := a[key]; ok {
		return false
	}
	a[key] = value
	return true
}

// Merge copies every key of src into a, overwriting.
func (a Answers) Merge(src Answers) {
	for k, v := range src {
		a[k] = v
	}
}

// Keys returns the keys in sorted order.
func (a Answers) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

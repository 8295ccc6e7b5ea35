package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// AddonFile is the entry-point file that marks a directory as an add-on.
const AddonFile = "addon.yaml"

// LoadAddon reads, schema-validates, and parses an addon.yaml. Every declared
// dev dependency must be a valid semver range.
func LoadAddon(path string) (*AddonManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAddon(data, path)
}

// ParseAddon is LoadAddon over already-read bytes.
func ParseAddon(data []byte, path string) (*AddonManifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid add-on manifest %s: %s", path, result.Summary())
	}

	var m AddonManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing add-on manifest %s: %w", path, err)
	}

	for _, dep := range m.DevDependencies {
		if _, err := semver.NewConstraint(dep.Value); err != nil {
			return nil, fmt.Errorf("add-on manifest %s: dev dependency %q has invalid range %q: %w",
				path, dep.Key, dep.Value, err)
		}
	}

	return &m, nil
}

// Summary joins the issues into one line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return strings.Join(parts, "; ")
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webstarter-labs/webstarter/internal/manifest"
	"github.com/webstarter-labs/webstarter/internal/prompt"
)

// DefaultCategory is used when a package does not declare one.
const DefaultCategory = "Other"

// BuildCatalog reads the package descriptor of every registered entry and
// returns the ones namespaced "<name>:<group>", ordered by category with
// label order kept inside each category. A malformed descriptor aborts.
func BuildCatalog(env *Environment, group string) ([]Addon, error) {
	var addons []Addon
	for _, entry := range env.Entries() {
		pkgDir := entry.Package
		if pkgDir == "" {
			pkgDir = packageDir(entry.Path, env.prefix)
		} else if !exists(filepath.Join(pkgDir, manifest.DescriptorFile)) {
			pkgDir = ""
		}

		var meta *manifest.ScaffoldMeta
		if pkgDir != "" {
			pd, err := manifest.ReadPackageDescriptor(filepath.Join(pkgDir, manifest.DescriptorFile))
			if err != nil {
				return nil, fmt.Errorf("loading add-on %s: %w", entry.Namespace, err)
			}
			meta = pd.Meta
		}

		if !qualifies(entry.Namespace, group) {
			continue
		}
		addons = append(addons, describe(entry, pkgDir, meta))
	}

	Sort(addons)
	return addons, nil
}

// Sort orders addons by label, then stably by category, so categories are
// contiguous and label order holds within each.
func Sort(addons []Addon) {
	sort.SliceStable(addons, func(i, j int) bool { return addons[i].Label < addons[j].Label })
	sort.SliceStable(addons, func(i, j int) bool { return addons[i].Category < addons[j].Category })
}

// qualifies reports whether namespace has exactly two segments, the second
// being group.
func qualifies(namespace, group string) bool {
	parts := strings.Split(namespace, ":")
	return len(parts) == 2 && parts[1] == group
}

func describe(entry Entry, pkgDir string, meta *manifest.ScaffoldMeta) Addon {
	a := Addon{
		Namespace:  entry.Namespace,
		Category:   DefaultCategory,
		Name:       entry.Namespace,
		Value:      entry.Namespace,
		Path:       entry.Path,
		PackageDir: pkgDir,
	}
	if meta != nil {
		if meta.Category != "" {
			a.Category = meta.Category
		}
		if meta.Name != "" {
			a.Name = meta.Name
		}
		if meta.Value != "" {
			a.Value = meta.Value
		}
		a.Label = meta.Label
	}
	if a.Label == "" {
		a.Label = a.Name
	}
	return a
}

// packageDir finds the package.json that owns an entry directory, searching
// the entry's parent and up to two levels above it (the deepest lookup is
// "lib/generators"). The search stops at a prefixed package directory. It
// returns "" when there is none.
func packageDir(entryPath, prefix string) string {
	dir := filepath.Dir(entryPath)
	for i := 0; i < 3; i++ {
		if _, err := os.Stat(filepath.Join(dir, manifest.DescriptorFile)); err == nil {
			return dir
		} else if !errors.Is(err, fs.ErrNotExist) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir || strings.HasPrefix(filepath.Base(dir), prefix) {
			break
		}
		dir = parent
	}
	return ""
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// SelectionList turns a sorted catalog into checkbox choices with a
// category heading before each run of same-category add-ons.
func SelectionList(addons []Addon) []prompt.Choice {
	choices := make([]prompt.Choice, 0, len(addons)*2)
	for i, a := range addons {
		if i == 0 || a.Category != addons[i-1].Category {
			choices = append(choices, prompt.Separator(a.Category))
		}
		choices = append(choices, prompt.Choice{Name: a.Name, Value: a.Value})
	}
	return choices
}

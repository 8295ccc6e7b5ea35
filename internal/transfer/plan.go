package transfer

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Marker prefixes the final segment of a template source.
const Marker = "_"

// Kind classifies a snapshot path.
type Kind int

const (
	KindPlain Kind = iota
	KindTemplateSource
	KindTargetPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindTemplateSource:
		return "template-source"
	case KindTargetPlaceholder:
		return "target-placeholder"
	default:
		return "plain"
	}
}

// Placeholder returns the target path of a template source, and false when
// p is not one. Paths are slash-separated.
func Placeholder(p string) (string, bool) {
	dir, base := path.Split(p)
	if !strings.HasPrefix(base, Marker) || base == Marker {
		return "", false
	}
	return dir + strings.TrimPrefix(base, Marker), true
}

// Plan is the classification of every path in a snapshot.
type Plan struct {
	All          []string
	Sources      []string
	Placeholders []string // may name paths absent from the snapshot
	Transfer     []string

	kinds map[string]Kind
}

// Classify builds a Plan from slash-separated relative paths.
func Classify(paths []string) *Plan {
	p := &Plan{
		All:   append([]string(nil), paths...),
		kinds: make(map[string]Kind, len(paths)),
	}
	sort.Strings(p.All)

	for _, rel := range p.All {
		if target, ok := Placeholder(rel); ok {
			p.Sources = append(p.Sources, rel)
			p.kinds[rel] = KindTemplateSource
			if _, seen := p.kinds[target]; !seen || p.kinds[target] == KindPlain {
				p.kinds[target] = KindTargetPlaceholder
			}
		}
	}
	for rel, k := range p.kinds {
		if k == KindTargetPlaceholder {
			p.Placeholders = append(p.Placeholders, rel)
		}
	}
	sort.Strings(p.Placeholders)

	for _, rel := range p.All {
		if p.Kind(rel) == KindPlain {
			p.Transfer = append(p.Transfer, rel)
		}
	}
	return p
}

// Kind returns the classification of rel.
func (p *Plan) Kind(rel string) Kind {
	return p.kinds[rel]
}

// Walk lists every regular file under dir as a slash-separated relative
// path, hidden entries included. Symlinks are not followed or listed.
func Walk(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking snapshot %s: %w", dir, err)
	}
	return paths, nil
}

// PlanDir walks dir and classifies what it finds.
func PlanDir(dir string) (*Plan, error) {
	paths, err := Walk(dir)
	if err != nil {
		return nil, err
	}
	return Classify(paths), nil
}

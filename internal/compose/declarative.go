package compose

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/webstarter-labs/webstarter/internal/manifest"
	"github.com/webstarter-labs/webstarter/internal/prompt"
	"github.com/webstarter-labs/webstarter/internal/transfer"
)

// templateSuffix marks files under an add-on's templates directory that are
// rendered with the answers. Others are copied.
const templateSuffix = ".tmpl"

// Declarative is an add-on described by an addon.yaml.
type Declarative struct {
	Manifest *manifest.AddonManifest
	Dir      string
}

// Run applies the manifest: defaults fill absent answers, prompts are asked,
// plugins and dev dependencies are published, and templates are rendered
// into the destination.
func (a *Declarative) Run(ctx context.Context, host Host) error {
	m := a.Manifest
	parent := host.Parent()
	ans := parent.Answers()

	for _, kv := range m.Defaults {
		ans.SetDefault(kv.Key, kv.Value)
	}

	if len(m.Prompts) > 0 {
		if err := parent.Ask(ctx, Questions(m.Prompts)); err != nil {
			return err
		}
	}

	for _, kv := range m.Plugins {
		host.AddPlugin(kv.Key, kv.Value)
	}
	for _, kv := range m.DevDependencies {
		host.AddDevDependency(kv.Key, kv.Value)
	}

	if m.Templates == "" {
		return nil
	}
	return a.renderTemplates(filepath.Join(a.Dir, m.Templates), parent)
}

func (a *Declarative) renderTemplates(root string, parent Parent) error {
	r := &transfer.Renderer{Data: map[string]any(parent.Answers())}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		if strings.HasSuffix(rel, templateSuffix) {
			dst := parent.DestinationPath(strings.TrimSuffix(rel, templateSuffix))
			if err := r.RenderFile(p, dst); err != nil {
				return fmt.Errorf("template %s: %w", rel, err)
			}
			return nil
		}
		return transfer.CopyFile(p, parent.DestinationPath(rel))
	})
}

// Questions converts declared prompts into prompt questions.
func Questions(specs []manifest.PromptSpec) []prompt.Question {
	qs := make([]prompt.Question, 0, len(specs))
	for _, s := range specs {
		q := prompt.Question{
			Type:    s.Type,
			Name:    s.Name,
			Message: s.Message,
			Default: s.Default,
		}
		for _, c := range s.Choices {
			q.Choices = append(q.Choices, prompt.Choice{Name: c.Name, Value: c.Value})
		}
		if len(s.When) > 0 {
			conds := make([]prompt.When, 0, len(s.When))
			for _, c := range s.When {
				if c.Equals == nil {
					conds = append(conds, prompt.Truthy(c.Answer))
				} else {
					conds = append(conds, prompt.Equals(c.Answer, c.Equals))
				}
			}
			q.When = prompt.All(conds...)
		}
		qs = append(qs, q)
	}
	return qs
}

package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/webstarter-labs/webstarter/internal/answers"
	"github.com/webstarter-labs/webstarter/internal/branding"
	"github.com/webstarter-labs/webstarter/internal/compose"
	"github.com/webstarter-labs/webstarter/internal/discovery"
	"github.com/webstarter-labs/webstarter/internal/output"
	"github.com/webstarter-labs/webstarter/internal/prompt"
	"github.com/webstarter-labs/webstarter/internal/registry"
	"github.com/webstarter-labs/webstarter/internal/remote"
	"github.com/webstarter-labs/webstarter/internal/scaffold"
	"github.com/webstarter-labs/webstarter/internal/transfer"
)

// Fetcher retrieves a template snapshot.
type Fetcher interface {
	Fetch(ctx context.Context, owner, repo, ref string) (*remote.Snapshot, error)
}

// Builtin is an add-on compiled into the binary together with its catalog
// entry.
type Builtin struct {
	Addon discovery.Addon
	New   func() compose.Addon
}

// Options configures a Generator.
type Options struct {
	// DestDir is the project directory. It is created as needed.
	DestDir string

	// ToolVersion is recorded as the tool's own dev dependency.
	ToolVersion string

	TemplateOwner string
	TemplateRepo  string

	Asker   prompt.Asker
	Fetcher Fetcher

	Builtins []Builtin

	// GlobalRoots are scanned first; LocalRoots never shadow a namespace
	// found there.
	GlobalRoots []string
	LocalRoots  []string

	// Presets answer questions up front. A preset question is not asked.
	Presets answers.Answers
}

// Result summarizes a finished run.
type Result struct {
	DestDir   string
	Addons    []string
	Snapshot  *remote.Snapshot
	Transfer  *transfer.Result
	Manifests *scaffold.Result
}

// Generator is the parent context add-ons are composed into. A Generator
// serves a single Run.
type Generator struct {
	opts    Options
	dest    string
	reg     *registry.Registry
	answers answers.Answers
	catalog []discovery.Addon
}

// New returns a Generator with an empty registry.
func New(opts Options) *Generator {
	if opts.TemplateOwner == "" {
		opts.TemplateOwner = branding.TemplateOwner()
	}
	if opts.TemplateRepo == "" {
		opts.TemplateRepo = branding.TemplateRepo()
	}
	if opts.Asker == nil {
		opts.Asker = prompt.StaticAsker{Presets: opts.Presets}
	}
	dest, err := filepath.Abs(opts.DestDir)
	if err != nil {
		dest = opts.DestDir
	}
	return &Generator{
		opts:    opts,
		dest:    dest,
		reg:     registry.New(),
		answers: answers.Defaults(branding.PackageName(), opts.ToolVersion, branding.DefaultRefspec()),
	}
}

// Answers implements compose.Parent.
func (g *Generator) Answers() answers.Answers { return g.answers }

// DestinationPath implements compose.Parent.
func (g *Generator) DestinationPath(elem ...string) string {
	return filepath.Join(append([]string{g.dest}, elem...)...)
}

// Ask implements compose.Parent. Questions with a preset are answered from
// it; the rest go to the Asker.
func (g *Generator) Ask(ctx context.Context, questions []prompt.Question) error {
	_, err := g.ask(ctx, questions)
	return err
}

func (g *Generator) ask(ctx context.Context, questions []prompt.Question) (answers.Answers, error) {
	collected := answers.Answers{}
	var pending []prompt.Question
	for _, q := range questions {
		if v, ok := g.opts.Presets[q.Name]; ok {
			collected[q.Name] = v
			continue
		}
		pending = append(pending, q)
	}
	g.answers.Merge(collected)

	if len(pending) > 0 {
		got, err := g.opts.Asker.Ask(ctx, pending, g.answers)
		if err != nil {
			return nil, err
		}
		collected.Merge(got)
		g.answers.Merge(got)
	}
	return collected, nil
}

// Registry returns the run's registry.
func (g *Generator) Registry() *registry.Registry { return g.reg }

// Catalog returns the add-ons offered for selection, available after Run
// has passed discovery.
func (g *Generator) Catalog() []discovery.Addon { return g.catalog }

// Discover builds the catalog without running anything else.
func (g *Generator) Discover() ([]discovery.Addon, error) {
	if _, err := g.discover(); err != nil {
		return nil, err
	}
	return g.catalog, nil
}

// Run executes the session. Steps run strictly in order and the first error
// stops the run; no outputs are written before the snapshot is fetched.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	g.reg.AddDevDependency(branding.PackageName(), scaffold.SelfDependencyRange(g.opts.ToolVersion))

	env, err := g.discover()
	if err != nil {
		return nil, err
	}

	prior, err := answers.Load(g.dest, branding.PackageName())
	if err != nil {
		return nil, err
	}
	g.answers.Merge(prior)
	g.answers.Merge(g.opts.Presets)

	asked, err := g.ask(ctx, g.questions())
	if err != nil {
		return nil, err
	}

	ref := g.answers.String(answers.KeyRefspec)
	var snap *remote.Snapshot
	err = output.RunWithSpinner(ctx, fmt.Sprintf("Fetching %s/%s@%s", g.opts.TemplateOwner, g.opts.TemplateRepo, ref),
		func(ctx context.Context) error {
			var err error
			snap, err = g.opts.Fetcher.Fetch(ctx, g.opts.TemplateOwner, g.opts.TemplateRepo, ref)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("fetching template: %w", err)
	}

	if err := answers.Save(g.dest, branding.PackageName(), asked); err != nil {
		return nil, err
	}

	selected := g.selectedNamespaces()
	driver := &compose.Driver{Loader: g.loader(env), Host: compose.NewHost(g.reg, g)}
	if err := driver.Run(ctx, selected); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tr, err := transfer.Transfer(snap.CachePath, g.dest)
	if err != nil {
		return nil, err
	}

	mr, err := scaffold.RenderManifests(g.answers, g.reg.DevDependencies(), g.dest)
	if err != nil {
		return nil, err
	}

	output.Info("project scaffolded", "dir", g.dest, "addons", len(selected), "files", len(tr.Transferred)+len(mr.Files))
	return &Result{
		DestDir:   g.dest,
		Addons:    selected,
		Snapshot:  snap,
		Transfer:  tr,
		Manifests: mr,
	}, nil
}

// discover fills the catalog from the add-on roots and the built-ins.
// Discovered packages shadow a built-in of the same namespace.
func (g *Generator) discover() (*discovery.Environment, error) {
	env := discovery.NewEnvironment()
	if err := env.Lookup(g.opts.GlobalRoots); err != nil {
		return nil, fmt.Errorf("discovering add-ons: %w", err)
	}
	if err := env.LookupLocal(g.opts.LocalRoots); err != nil {
		return nil, fmt.Errorf("discovering local add-ons: %w", err)
	}

	catalog, err := discovery.BuildCatalog(env, branding.IntegrationGroup())
	if err != nil {
		return nil, err
	}
	for _, b := range g.opts.Builtins {
		if _, ok := env.Get(b.Addon.Namespace); ok {
			continue
		}
		catalog = append(catalog, b.Addon)
	}
	discovery.Sort(catalog)

	g.catalog = catalog
	output.Debug("add-on catalog built", "count", len(catalog))
	return env, nil
}

func (g *Generator) questions() []prompt.Question {
	qs := []prompt.Question{
		{
			Type:    prompt.TypeInput,
			Name:    answers.KeyName,
			Message: "Project name (machine name)",
			Default: g.answers.String(answers.KeyName),
		},
		{
			Type:    prompt.TypeInput,
			Name:    answers.KeyRepository,
			Message: "Repository clone URL",
			Default: g.answers.String(answers.KeyRepository),
		},
	}
	if len(g.catalog) > 0 {
		qs = append(qs, prompt.Question{
			Type:    prompt.TypeCheckbox,
			Name:    answers.KeyPlugins,
			Message: "Select plugins",
			Default: g.answers.Strings(answers.KeyPlugins),
			Choices: discovery.SelectionList(g.catalog),
		})
	}
	return append(qs, prompt.Question{
		Type:    prompt.TypeInput,
		Name:    answers.KeyRefspec,
		Message: "Version",
		Default: g.answers.String(answers.KeyRefspec),
	})
}

// selectedNamespaces maps the selected values to catalog namespaces in
// selection order. A value the catalog does not know is taken as a
// namespace.
func (g *Generator) selectedNamespaces() []string {
	byValue := make(map[string]string, len(g.catalog))
	for _, a := range g.catalog {
		byValue[a.Value] = a.Namespace
	}

	var out []string
	seen := make(map[string]bool)
	for _, v := range g.answers.Strings(answers.KeyPlugins) {
		ns, ok := byValue[v]
		if !ok {
			ns = v
		}
		if seen[ns] {
			continue
		}
		seen[ns] = true
		out = append(out, ns)
	}
	return out
}

func (g *Generator) loader(env *discovery.Environment) compose.Loader {
	discovered := compose.DiscoveredLoader{}
	for _, e := range env.Entries() {
		discovered[e.Namespace] = e.Path
	}
	builtins := compose.BuiltinLoader{}
	for _, b := range g.opts.Builtins {
		builtins[b.Addon.Namespace] = b.New
	}
	return compose.ChainLoader{discovered, builtins}
}

package drupal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/webstarter-labs/webstarter/internal/answers"
	"github.com/webstarter-labs/webstarter/internal/compose"
	"github.com/webstarter-labs/webstarter/internal/prompt"
	"github.com/webstarter-labs/webstarter/internal/registry"
)

type fakeParent struct {
	answers answers.Answers
	presets answers.Answers
	asked   []string
}

func (p *fakeParent) Answers() answers.Answers { return p.answers }

func (p *fakeParent) DestinationPath(elem ...string) string { return filepath.Join(elem...) }

func (p *fakeParent) Ask(ctx context.Context, qs []prompt.Question) error {
	got, err := prompt.StaticAsker{Presets: p.presets}.Ask(ctx, qs, p.answers)
	if err != nil {
		return err
	}
	for _, k := range got.Keys() {
		p.asked = append(p.asked, k)
	}
	p.answers.Merge(got)
	return nil
}

func run(t *testing.T, start, presets answers.Answers) (*fakeParent, *registry.Registry) {
	t.Helper()
	parent := &fakeParent{answers: start, presets: presets}
	reg := registry.New()
	if err := New().Run(context.Background(), compose.NewHost(reg, parent)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return parent, reg
}

func TestRun_DefaultsWithoutAdvancedInstall(t *testing.T) {
	parent, reg := run(t, answers.Answers{KeyPlatform: "drupal", KeySolr: false}, nil)

	if len(parent.asked) != 0 {
		t.Errorf("asked %v, want nothing for a basic install", parent.asked)
	}
	v, ok := reg.Plugin(PluginName)
	if !ok {
		t.Fatal("settings not published")
	}
	want := Settings{Features: true, CMI: false, Solr: false, Theme: "gesso"}
	if v != want {
		t.Errorf("settings = %+v, want %+v", v, want)
	}
}

func TestRun_AdvancedInstallAsks(t *testing.T) {
	parent, reg := run(t,
		answers.Answers{KeyPlatform: "drupal", KeyInstallType: "advanced", KeyUseCompass: true},
		answers.Answers{KeyCMI: true, KeyTheme: "custom"},
	)

	if len(parent.asked) != 4 {
		t.Errorf("asked %v, want all four questions", parent.asked)
	}
	v, _ := reg.Plugin(PluginName)
	want := Settings{Features: true, CMI: true, Solr: true, Theme: "custom"}
	if v != want {
		t.Errorf("settings = %+v, want %+v", v, want)
	}
}

func TestPrompts_Gates(t *testing.T) {
	qs := Prompts(Defaults())
	wordpress := answers.Answers{KeyPlatform: "wordpress", KeyInstallType: "advanced", KeyUseCompass: true}
	for _, q := range qs {
		if q.When(wordpress) {
			t.Errorf("%s asked for a non-Drupal project", q.Name)
		}
	}

	theme := qs[3]
	if theme.When(answers.Answers{KeyPlatform: "drupal"}) {
		t.Error("theme asked without compass")
	}
	if !theme.When(answers.Answers{KeyPlatform: "drupal", KeyUseCompass: true}) {
		t.Error("theme not asked with compass")
	}
}

func TestDescriptor(t *testing.T) {
	d := Descriptor()
	if d.Namespace != Namespace || d.Value != "drupal" || d.Category != "Platform" {
		t.Errorf("Descriptor() = %+v", d)
	}
}

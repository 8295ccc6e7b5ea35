package prompt

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/webstarter-labs/webstarter/internal/answers"
)

func pluginQuestions() []Question {
	return []Question{
		{Type: TypeInput, Name: "name", Message: "Project name", Default: "site"},
		{Type: TypeConfirm, Name: "advanced", Message: "Advanced?", Default: false},
		{Type: TypeCheckbox, Name: "plugins", Message: "Select plugins", Choices: []Choice{
			Separator("Platform"),
			{Name: "Drupal", Value: "drupal:web-starter"},
			{Name: "WordPress", Value: "wordpress:web-starter"},
			Separator("Theme"),
			{Name: "Gesso", Value: "gesso:web-starter"},
		}},
		{Type: TypeList, Name: "solr", Message: "Search", When: Truthy("advanced"), Choices: []Choice{
			{Name: "None", Value: "none"},
			{Name: "Solr", Value: "solr"},
		}, Default: "none"},
	}
}

func TestStaticAsker_DefaultsAndPresets(t *testing.T) {
	asker := StaticAsker{Presets: answers.Answers{"plugins": []string{"drupal:web-starter"}}}
	got, err := asker.Ask(context.Background(), pluginQuestions(), answers.Answers{})
	if err != nil {
		t.Fatal(err)
	}

	want := answers.Answers{
		"name":     "site",
		"advanced": false,
		"plugins":  []string{"drupal:web-starter"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestStaticAsker_GateSeesEarlierAnswers(t *testing.T) {
	asker := StaticAsker{Presets: answers.Answers{"advanced": true}}
	got, err := asker.Ask(context.Background(), pluginQuestions(), answers.Answers{})
	if err != nil {
		t.Fatal(err)
	}
	if got["solr"] != "none" {
		t.Errorf("solr = %v, want gated question asked with default", got["solr"])
	}
}

func TestStaticAsker_GateSeesSeed(t *testing.T) {
	qs := []Question{{Type: TypeInput, Name: "theme", Message: "Theme", Default: "gesso", When: Equals("platform", "drupal")}}

	got, err := StaticAsker{}.Ask(context.Background(), qs, answers.Answers{"platform": "wordpress"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Has("theme") {
		t.Error("question asked although its gate is closed")
	}

	got, err = StaticAsker{}.Ask(context.Background(), qs, answers.Answers{"platform": "drupal"})
	if err != nil {
		t.Fatal(err)
	}
	if got["theme"] != "gesso" {
		t.Errorf("theme = %v", got["theme"])
	}
}

func TestLineAsker(t *testing.T) {
	in := strings.NewReader("My Project\ny\n1,3\n2\n")
	var out bytes.Buffer

	got, err := NewLineAsker(in, &out).Ask(context.Background(), pluginQuestions(), answers.Answers{})
	if err != nil {
		t.Fatal(err)
	}

	want := answers.Answers{
		"name":     "My Project",
		"advanced": true,
		"plugins":  []string{"drupal:web-starter", "gesso:web-starter"},
		"solr":     "solr",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	for _, heading := range []string{"Platform", "Theme", "3) Gesso"} {
		if !strings.Contains(out.String(), heading) {
			t.Errorf("output missing %q:\n%s", heading, out.String())
		}
	}
}

func TestLineAsker_EmptyTakesDefault(t *testing.T) {
	in := strings.NewReader("\n\n\n")
	got, err := NewLineAsker(in, &bytes.Buffer{}).Ask(context.Background(), pluginQuestions(), answers.Answers{})
	if err != nil {
		t.Fatal(err)
	}
	if got["name"] != "site" || got["advanced"] != false {
		t.Errorf("got %#v", got)
	}
	if p, ok := got["plugins"].([]string); !ok || len(p) != 0 {
		t.Errorf("plugins = %#v, want empty list", got["plugins"])
	}
}

func TestLineAsker_InvalidSelection(t *testing.T) {
	qs := []Question{{Type: TypeList, Name: "x", Message: "Pick", Choices: []Choice{{Name: "a", Value: "a"}}}}
	_, err := NewLineAsker(strings.NewReader("7\n"), &bytes.Buffer{}).Ask(context.Background(), qs, nil)
	if err == nil || !strings.Contains(err.Error(), "invalid selection") {
		t.Fatalf("expected invalid selection error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]Question{
		"no name":      {Type: TypeInput, Message: "?"},
		"bad type":     {Type: "password", Name: "p"},
		"empty choice": {Type: TypeList, Name: "l", Choices: []Choice{Separator("only a heading")}},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			if err := Validate([]Question{q}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSections(t *testing.T) {
	got := sections(pluginQuestions()[2].Choices)
	if len(got) != 2 || got[0].Title != "Platform" || len(got[0].Options) != 2 || got[1].Title != "Theme" {
		t.Errorf("sections = %+v", got)
	}
}

func TestWhenHelpers(t *testing.T) {
	a := answers.Answers{"platform": "drupal", "install_type": "advanced", "compass": true, "plugins": []string{}}

	if !All(Equals("platform", "drupal"), Equals("install_type", "advanced"))(a) {
		t.Error("All should hold")
	}
	if Equals("platform", "wordpress")(a) {
		t.Error("Equals should not hold")
	}
	if !Truthy("compass")(a) {
		t.Error("Truthy(compass) should hold")
	}
	if Truthy("plugins")(a) || Truthy("missing")(a) {
		t.Error("empty list and missing key are not truthy")
	}
}

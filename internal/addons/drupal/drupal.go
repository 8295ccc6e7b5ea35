// Package drupal is the built-in Drupal add-on. It fills in Drupal defaults,
// asks the Drupal-specific questions when the project is on Drupal, and
// publishes the resulting settings for other add-ons.
package drupal

import (
	"context"

	"github.com/webstarter-labs/webstarter/internal/answers"
	"github.com/webstarter-labs/webstarter/internal/compose"
	"github.com/webstarter-labs/webstarter/internal/discovery"
	"github.com/webstarter-labs/webstarter/internal/prompt"
)

// Namespace is the add-on's catalog namespace.
const Namespace = "drupal:web-starter"

// PluginName is the Registry key the settings are published under.
const PluginName = "drupal"

// Answer keys.
const (
	KeyFeatures      = "features"
	KeyCMI           = "cmi"
	KeySolr          = "solr"
	KeyTheme         = "drupal_theme"
	KeyPlatform      = "platform"
	KeyInstallType   = "install_type"
	KeyUseCompass    = "drupal_use_compass"
	platformDrupal   = "drupal"
	installAdvanced  = "advanced"
	defaultThemeName = "gesso"
)

// Settings is what the add-on publishes.
type Settings struct {
	Features bool
	CMI      bool
	Solr     bool
	Theme    string
}

// Defaults returns the answers the add-on falls back on.
func Defaults() answers.Answers {
	return answers.Answers{
		KeyFeatures: true,
		KeyCMI:      false,
		KeySolr:     true,
		KeyTheme:    defaultThemeName,
	}
}

// NpmPackages lists the dev dependencies the add-on contributes.
func NpmPackages(answers.Answers) map[string]string {
	return nil
}

// Prompts returns the Drupal questions with defaults taken from cfg.
func Prompts(cfg answers.Answers) []prompt.Question {
	advanced := prompt.All(
		prompt.Equals(KeyPlatform, platformDrupal),
		prompt.Equals(KeyInstallType, installAdvanced),
	)
	return []prompt.Question{
		{
			Type:    prompt.TypeConfirm,
			Name:    KeyFeatures,
			Message: "Does it use the Features module?",
			Default: cfg.Bool(KeyFeatures),
			When:    advanced,
		},
		{
			Type:    prompt.TypeConfirm,
			Name:    KeyCMI,
			Message: "Does it use the Configuration module?",
			Default: cfg.Bool(KeyCMI),
			When:    advanced,
		},
		{
			Type:    prompt.TypeConfirm,
			Name:    KeySolr,
			Message: "Does it use Solr?",
			Default: cfg.Bool(KeySolr),
			When:    advanced,
		},
		{
			Type:    prompt.TypeInput,
			Name:    KeyTheme,
			Message: "Theme name",
			Default: cfg.String(KeyTheme),
			When:    prompt.All(prompt.Equals(KeyPlatform, platformDrupal), prompt.Truthy(KeyUseCompass)),
		},
	}
}

// Descriptor is the add-on's catalog entry.
func Descriptor() discovery.Addon {
	return discovery.Addon{
		Namespace: Namespace,
		Category:  "Platform",
		Name:      "Drupal",
		Label:     "Drupal",
		Value:     platformDrupal,
	}
}

// Addon implements compose.Addon.
type Addon struct{}

// New returns the add-on.
func New() compose.Addon { return Addon{} }

// Run implements compose.Addon.
func (Addon) Run(ctx context.Context, host compose.Host) error {
	parent := host.Parent()
	cfg := parent.Answers()
	for k, v := range Defaults() {
		cfg.SetDefault(k, v)
	}

	if err := parent.Ask(ctx, Prompts(cfg)); err != nil {
		return err
	}

	for name, version := range NpmPackages(cfg) {
		host.AddDevDependency(name, version)
	}
	host.AddPlugin(PluginName, Settings{
		Features: cfg.Bool(KeyFeatures),
		CMI:      cfg.Bool(KeyCMI),
		Solr:     cfg.Bool(KeySolr),
		Theme:    cfg.String(KeyTheme),
	})
	return nil
}

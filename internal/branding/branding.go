// Package branding provides compile-time identity values for the CLI.
//
// Forks edit branding.yaml in this package and rebuild; Go's //go:embed bakes
// it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	PackageName      string `yaml:"package_name"`
	IntegrationGroup string `yaml:"integration_group"`
	TemplateOwner    string `yaml:"template_owner"`
	TemplateRepo     string `yaml:"template_repo"`
	DefaultRefspec   string `yaml:"default_refspec"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:          "web-starter",
			DisplayName:      "Web Starter",
			Description:      "Scaffold web projects from a remote template and composable add-ons",
			HomeDir:          ".web-starter",
			EnvPrefix:        "WEB_STARTER",
			PackageName:      "generator-web-starter",
			IntegrationGroup: "web-starter",
			TemplateOwner:    "forumone",
			TemplateRepo:     "web-starter",
			DefaultRefspec:   "1.1.x",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "web-starter").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".web-starter").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "WEB_STARTER").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PackageName is the name this tool is published under. It keys the persisted
// answers file and is seeded as a dev dependency of every generated project.
func PackageName() string { load(); return defaults.PackageName }

// IntegrationGroup is the sub-generator name an add-on must register under to
// appear in the selection catalog (the second segment of "drupal:web-starter").
func IntegrationGroup() string { load(); return defaults.IntegrationGroup }

// TemplateOwner returns the GitHub owner of the remote template bundle.
func TemplateOwner() string { load(); return defaults.TemplateOwner }

// TemplateRepo returns the GitHub repository of the remote template bundle.
func TemplateRepo() string { load(); return defaults.TemplateRepo }

// DefaultRefspec returns the template revision offered when none was saved.
func DefaultRefspec() string { load(); return defaults.DefaultRefspec }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "WEB_STARTER_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

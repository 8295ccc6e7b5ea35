package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/webstarter-labs/webstarter/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyTemplateOwner = "template_owner"
	KeyTemplateRepo  = "template_repo"
	KeyAddonPaths    = "addon_paths"
	KeyGitHubAPI     = "github_api"
	KeyCacheMaxAge   = "cache_max_age"
)

// Dir returns the path to the config directory (~/.web-starter/).
// <PREFIX>_HOME overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.web-starter/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// CacheDir returns where remote template snapshots are stored.
func CacheDir() string {
	return filepath.Join(Dir(), "cache")
}

// AddonsDir returns the user-level add-on root that `addon install` and
// `addon link` write into. It is always searched by discovery.
func AddonsDir() string {
	return filepath.Join(Dir(), "addons")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyTemplateOwner, branding.TemplateOwner())
	viper.SetDefault(KeyTemplateRepo, branding.TemplateRepo())
	viper.SetDefault(KeyGitHubAPI, "https://api.github.com")
	viper.SetDefault(KeyCacheMaxAge, "24h")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// AddonPaths returns the extra add-on search roots from addon_paths. The
// environment form is a path-list separated value.
func AddonPaths() []string {
	paths := viper.GetStringSlice(KeyAddonPaths)
	if len(paths) == 1 {
		return filepath.SplitList(paths[0])
	}
	return paths
}

// CacheMaxAge returns how long a fetched template snapshot stays fresh.
func CacheMaxAge() time.Duration {
	d := viper.GetDuration(KeyCacheMaxAge)
	if d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

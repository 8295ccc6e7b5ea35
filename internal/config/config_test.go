package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDirHonorsHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WEB_STARTER_HOME", dir)

	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got := CacheDir(); got != filepath.Join(dir, "cache") {
		t.Errorf("CacheDir() = %q", got)
	}
	if got := AddonsDir(); got != filepath.Join(dir, "addons") {
		t.Errorf("AddonsDir() = %q", got)
	}
}

func TestSetAndGetRoundTrip(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("WEB_STARTER_HOME", t.TempDir())

	Load()
	if got := Get(KeyTemplateOwner); got != "forumone" {
		t.Errorf("default template_owner = %q, want forumone", got)
	}

	if err := Set(KeyTemplateOwner, "acme"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyTemplateOwner); got != "acme" {
		t.Errorf("template_owner after reload = %q, want acme", got)
	}
}

func TestAddonPathsFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("WEB_STARTER_HOME", t.TempDir())
	t.Setenv("WEB_STARTER_ADDON_PATHS", "/a"+string(filepath.ListSeparator)+"/b")

	Load()
	paths := AddonPaths()
	if len(paths) != 2 || paths[0] != "/a" || paths[1] != "/b" {
		t.Errorf("AddonPaths() = %v, want [/a /b]", paths)
	}
}

func TestCacheMaxAgeDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("WEB_STARTER_HOME", t.TempDir())

	Load()
	if got := CacheMaxAge(); got != 24*time.Hour {
		t.Errorf("CacheMaxAge() = %v, want 24h", got)
	}
}

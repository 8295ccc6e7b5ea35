package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need Developer Mode on Windows")
	}
}

func TestLinkDir(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()

	target := filepath.Join(tmp, "generator-theme")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "package.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(tmp, "addons", "generator-theme")
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatal(err)
	}
	if err := LinkDir(target, link); err != nil {
		t.Fatalf("LinkDir: %v", err)
	}

	if !IsLink(link) {
		t.Fatal("expected a link")
	}
	if _, err := os.Stat(filepath.Join(link, "package.json")); err != nil {
		t.Errorf("reading through link: %v", err)
	}

	if err := RemoveLink(link); err != nil {
		t.Fatalf("RemoveLink: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target removed with link: %v", err)
	}
}

func TestLinkDir_RejectsFile(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := LinkDir(file, filepath.Join(tmp, "link")); err == nil {
		t.Fatal("expected error linking to a file")
	}
}

func TestRemoveLink_NotALink(t *testing.T) {
	dir := t.TempDir()
	if err := RemoveLink(dir); err == nil {
		t.Fatal("expected error removing a plain directory")
	}
}

func TestCanonical(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()

	real := filepath.Join(tmp, "real")
	if err := os.MkdirAll(real, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "alias")
	if err := os.Symlink(real, link); err != nil {
		t.Fatal(err)
	}

	got, err := Canonical(link)
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(real)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Canonical(%s) = %s, want %s", link, got, want)
	}
}

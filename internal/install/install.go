package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/webstarter-labs/webstarter/internal/platform"
)

// Prefix is the directory prefix add-on packages are discovered by.
const Prefix = "generator-"

// tmpSuffix is appended to the target dir during atomic clone.
const tmpSuffix = ".tmp"

// ErrExists is returned when a package of the same name is already present.
var ErrExists = errors.New("add-on package already installed")

// ErrLinked is returned when git operations are attempted on a linked package.
var ErrLinked = errors.New("add-on package is linked")

// Package is an entry of the add-on root.
type Package struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Linked bool   `json:"linked"`
	Target string `json:"target,omitempty"`
}

// PackageName derives the package directory name from a git URL or path:
// the last segment without ".git", prefixed with "generator-" if needed.
func PackageName(source string) string {
	s := strings.TrimRight(source, "/")
	if i := strings.LastIndexAny(s, "/:"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ".git")
	if !strings.HasPrefix(s, Prefix) {
		s = Prefix + s
	}
	return s
}

// Install shallow-clones gitURL into root. The clone is atomic: it lands in
// a .tmp directory first and is renamed on success.
func Install(ctx context.Context, gitURL, root string) (*Package, error) {
	if err := ensureGit(); err != nil {
		return nil, err
	}

	name := PackageName(gitURL)
	target := filepath.Join(root, name)
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}

	tmpDir := target + tmpSuffix
	_ = os.RemoveAll(tmpDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating add-on root: %w", err)
	}

	if err := git(ctx, "", "clone", "--depth=1", gitURL, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("cloning %s: %w", gitURL, err)
	}
	if err := os.Rename(tmpDir, target); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("finalizing clone: %w", err)
	}

	return &Package{Name: name, Path: target}, nil
}

// Update pulls the latest changes of an installed package.
func Update(ctx context.Context, root, name string) error {
	dir := filepath.Join(root, name)
	if platform.IsLink(dir) {
		return fmt.Errorf("%w: update %s at its source", ErrLinked, name)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return fmt.Errorf("%s is not a git checkout", dir)
	}
	if err := ensureGit(); err != nil {
		return err
	}
	if err := git(ctx, dir, "pull", "--ff-only"); err != nil {
		return fmt.Errorf("pulling %s: %w", name, err)
	}
	return nil
}

// Link makes the local package at src available in root under its
// directory name (prefixed if needed).
func Link(src, root string) (*Package, error) {
	real, err := platform.Canonical(src)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", src, err)
	}
	name := PackageName(real)
	target := filepath.Join(root, name)
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating add-on root: %w", err)
	}
	if err := platform.LinkDir(real, target); err != nil {
		return nil, err
	}
	return &Package{Name: name, Path: target, Linked: true, Target: real}, nil
}

// Remove deletes an installed package, or just the link for a linked one.
func Remove(root, name string) error {
	dir := filepath.Join(root, name)
	if platform.IsLink(dir) {
		return platform.RemoveLink(dir)
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("add-on package %s is not installed", name)
	}
	return os.RemoveAll(dir)
}

// List returns the packages in root, sorted by name.
func List(root string) ([]Package, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading add-on root: %w", err)
	}

	var pkgs []Package
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), Prefix) || strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}
		p := Package{Name: e.Name(), Path: filepath.Join(root, e.Name())}
		if platform.IsLink(p.Path) {
			p.Linked = true
			p.Target, _ = os.Readlink(p.Path)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found on PATH")
	}
	return nil
}

func git(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w\n%s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

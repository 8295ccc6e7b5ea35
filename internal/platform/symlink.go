package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// LinkDir makes link point at the directory target. target is made absolute
// first so the link survives being read from another working directory.
func LinkDir(target, link string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("link target %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("link target %s is not a directory", abs)
	}

	if err := os.Symlink(abs, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating link %s (enable Developer Mode for symlinks): %w", link, err)
		}
		return fmt.Errorf("creating link %s: %w", link, err)
	}
	return nil
}

// IsLink reports whether path itself is a symbolic link.
func IsLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// RemoveLink removes a link without touching what it points at.
func RemoveLink(path string) error {
	if !IsLink(path) {
		return fmt.Errorf("%s is not a link", path)
	}
	return os.Remove(path)
}

// Canonical returns the absolute path of p with every symlink resolved.
func Canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

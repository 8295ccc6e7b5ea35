package remote

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// extractTarGz unpacks a GitHub tarball into dest, dropping the
// "<owner>-<repo>-<sha>/" directory every entry sits under. Symlinks and
// other special entries are skipped.
func extractTarGz(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		rel, ok := stripTopDir(hdr.Name)
		if !ok {
			continue
		}
		if err := checkEntryPath(rel); err != nil {
			return err
		}
		target := filepath.Join(dest, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", rel, err)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, os.FileMode(hdr.Mode).Perm()); err != nil {
				return fmt.Errorf("extracting %s: %w", rel, err)
			}
		}
	}
}

// stripTopDir drops the first path segment. Entries at the top level (the
// pax global header, the top directory itself) yield false.
func stripTopDir(name string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	i := strings.Index(name, "/")
	if i < 0 {
		return "", false
	}
	rel := strings.TrimSuffix(name[i+1:], "/")
	return rel, rel != ""
}

// checkEntryPath rejects entries that would land outside the destination.
func checkEntryPath(rel string) error {
	if path.IsAbs(rel) || strings.Contains(rel, `\`) {
		return fmt.Errorf("archive entry %q: absolute path", rel)
	}
	clean := path.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("archive entry %q: escapes destination", rel)
	}
	return nil
}

func writeEntry(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

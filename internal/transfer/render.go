package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"unicode/utf8"

	"github.com/webstarter-labs/webstarter/internal/platform"
)

// ErrRender marks a template that failed to parse or execute.
var ErrRender = errors.New("rendering template")

// Renderer renders files through text/template.
type Renderer struct {
	LeftDelim  string
	RightDelim string
	Data       any
	Funcs      template.FuncMap
}

// SnapshotRenderer is the pass plain snapshot files go through.
func SnapshotRenderer() *Renderer {
	return &Renderer{LeftDelim: "<$", RightDelim: "$>", Data: map[string]any{}}
}

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// IsBinary reports whether content is not text: it has a NUL byte near the
// start or is not valid UTF-8.
func IsBinary(content []byte) bool {
	head := content
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0 || !utf8.Valid(content)
}

// Render renders content. name appears in errors. Binary content and
// content with no left delimiter are returned as is.
func (r *Renderer) Render(name string, content []byte) ([]byte, error) {
	left := r.LeftDelim
	if left == "" {
		left = "{{"
	}
	if !bytes.Contains(content, []byte(left)) || IsBinary(content) {
		return content, nil
	}

	tmpl, err := template.New(name).
		Delims(r.LeftDelim, r.RightDelim).
		Option("missingkey=error").
		Funcs(r.Funcs).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRender, name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.Data); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRender, name, err)
	}
	return buf.Bytes(), nil
}

// RenderFile renders src into dst, creating dst's directory and keeping
// src's permission bits.
func (r *Renderer) RenderFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	out, err := r.Render(filepath.Base(src), data)
	if err != nil {
		return err
	}
	return writeFile(dst, out, info.Mode())
}

// CopyFile copies src to dst byte for byte with src's permission bits.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return writeFile(dst, data, info.Mode())
}

// writeFile writes data with exactly mode's permission bits, regardless of
// umask.
func writeFile(dst string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, mode.Perm()); err != nil {
		return err
	}
	return platform.Chmod(dst, mode)
}

package answers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileName is the per-project file prior answers are persisted in. It is
// shared with other generators, each owning one top-level section.
const FileName = ".yo-rc.json"

// Load reads the section owned by this tool from dir/.yo-rc.json. A missing
// file or section yields empty answers.
func Load(dir, section string) (Answers, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Answers{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing %s: invalid JSON", path)
	}

	res := gjson.GetBytes(data, escapePath(section))
	if !res.Exists() {
		return Answers{}, nil
	}
	raw, ok := res.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing %s: section %q is not an object", path, section)
	}
	return Answers(raw), nil
}

// Save merges values into this tool's section of dir/.yo-rc.json. Keys not in
// values and sections owned by other tools are left untouched.
func Save(dir, section string, values Answers) error {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) || len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	prefix := escapePath(section) + "."
	for _, key := range values.Keys() {
		data, err = sjson.SetBytes(data, prefix+escapePath(key), values[key])
		if err != nil {
			return fmt.Errorf("setting %s.%s: %w", section, key, err)
		}
	}

	out := []byte(gjson.GetBytes(data, "@pretty").Raw)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// escapePath escapes gjson/sjson path metacharacters in a single key.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

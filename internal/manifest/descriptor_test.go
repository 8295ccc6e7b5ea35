package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePackageDescriptor(t *testing.T) {
	data := []byte(`{
  "name": "generator-drupal",
  "version": "1.2.0",
  "webStarter": {"category": "Platform", "name": "Drupal", "label": "drupal", "value": "drupal"}
}`)
	pd, err := ParsePackageDescriptor(data, "package.json")
	if err != nil {
		t.Fatalf("ParsePackageDescriptor: %v", err)
	}
	if pd.Name != "generator-drupal" || pd.Version != "1.2.0" {
		t.Errorf("got %s@%s", pd.Name, pd.Version)
	}
	if pd.Meta == nil {
		t.Fatal("Meta is nil")
	}
	want := ScaffoldMeta{Category: "Platform", Name: "Drupal", Label: "drupal", Value: "drupal"}
	if *pd.Meta != want {
		t.Errorf("Meta = %+v, want %+v", *pd.Meta, want)
	}
}

func TestParsePackageDescriptor_NoMetadata(t *testing.T) {
	pd, err := ParsePackageDescriptor([]byte(`{"name": "generator-x"}`), "package.json")
	if err != nil {
		t.Fatal(err)
	}
	if pd.Meta != nil {
		t.Errorf("Meta = %+v, want nil", pd.Meta)
	}
}

func TestParsePackageDescriptor_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{"name": `,
		"not an object": `["a"]`,
		"bad block":     `{"webStarter": "yes"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePackageDescriptor([]byte(doc), "package.json"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadPackageDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), DescriptorFile)
	if err := os.WriteFile(path, []byte(`{"name": "generator-x", "version": "0.1.0"}`), 0644); err != nil {
		t.Fatal(err)
	}
	pd, err := ReadPackageDescriptor(path)
	if err != nil {
		t.Fatal(err)
	}
	if pd.Version != "0.1.0" {
		t.Errorf("Version = %q", pd.Version)
	}
}

package discovery

// Entry is a registered sub-generator.
type Entry struct {
	Namespace string
	Path      string // canonical entry directory

	// Package is the canonical package directory the entry was found in.
	// It is empty for entries registered by hand.
	Package string
}

// Addon is a catalog entry: a qualifying sub-generator plus the metadata its
// package declares.
type Addon struct {
	Namespace  string `json:"namespace"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Path       string `json:"path,omitempty"`
	PackageDir string `json:"package_dir,omitempty"`
}

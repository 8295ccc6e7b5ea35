package remote

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// markerSuffix is appended to a snapshot directory to name its marker file.
// The marker sits beside the snapshot so it never shows up in the template.
const markerSuffix = ".web-starter-cache.json"

// marker records when a snapshot was fetched.
type marker struct {
	Owner     string    `json:"owner"`
	Repo      string    `json:"repo"`
	Ref       string    `json:"ref"`
	FetchedAt time.Time `json:"fetched_at"`
}

// loadMarker reads the marker for a snapshot directory.
// Returns nil, nil if there is none.
func loadMarker(dir string) (*marker, error) {
	data, err := os.ReadFile(dir + markerSuffix)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache marker: %w", err)
	}

	var m marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing cache marker: %w", err)
	}
	return &m, nil
}

// saveMarker writes the marker for a snapshot directory.
func saveMarker(dir string, m *marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache marker: %w", err)
	}
	if err := os.WriteFile(dir+markerSuffix, data, 0644); err != nil {
		return fmt.Errorf("writing cache marker: %w", err)
	}
	return nil
}

// isStale reports whether m is older than maxAge at now.
func isStale(m *marker, maxAge time.Duration, now time.Time) bool {
	if m == nil {
		return true
	}
	return now.Sub(m.FetchedAt) > maxAge
}

package transfer

import (
	"fmt"
	"path/filepath"

	"github.com/webstarter-labs/webstarter/internal/output"
)

// Result lists what a Transfer did, as slash-separated relative paths.
type Result struct {
	Transferred []string
	Skipped     []string
}

// Transfer copies the plain files of snapshotDir into destDir at the same
// relative paths. Template sources and their placeholders are skipped.
// Existing files in destDir are overwritten. The first render error aborts.
func Transfer(snapshotDir, destDir string) (*Result, error) {
	plan, err := PlanDir(snapshotDir)
	if err != nil {
		return nil, err
	}

	r := SnapshotRenderer()
	res := &Result{}
	for _, rel := range plan.Transfer {
		src := filepath.Join(snapshotDir, filepath.FromSlash(rel))
		dst := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := r.RenderFile(src, dst); err != nil {
			return res, fmt.Errorf("transferring %s: %w", rel, err)
		}
		res.Transferred = append(res.Transferred, rel)
	}

	for _, rel := range plan.All {
		if plan.Kind(rel) != KindPlain {
			res.Skipped = append(res.Skipped, rel)
		}
	}

	output.Debug("transferred snapshot", "files", len(res.Transferred), "skipped", len(res.Skipped))
	return res, nil
}

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// download fetches the tarball of owner/repo at ref and swaps it into dir.
func (f *Fetcher) download(ctx context.Context, owner, repo, ref, dir string) error {
	u := fmt.Sprintf("%s/repos/%s/%s/tarball/%s", f.baseURL, owner, repo, url.PathEscape(ref))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", f.userAgent)
	if f.token != "" {
		req.Header.Set("Authorization", "token "+f.token)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s/%s@%s: %w", owner, repo, ref, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s/%s@%s", ErrNotFound, owner, repo, ref)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, ".fetch-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := extractTarGz(resp.Body, tmp); err != nil {
		return fmt.Errorf("extracting %s/%s@%s: %w", owner, repo, ref, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing stale snapshot: %w", err)
	}
	if err := os.Rename(tmp, dir); err != nil {
		return fmt.Errorf("moving snapshot into place: %w", err)
	}
	return nil
}

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBaseURL is the GitHub API root.
const DefaultBaseURL = "https://api.github.com"

// DefaultMaxAge is how long a snapshot is reused before it is fetched again.
const DefaultMaxAge = 24 * time.Hour

// ErrNotFound is returned when the repository or revision does not exist.
var ErrNotFound = errors.New("template not found")

// Snapshot is a local copy of one revision of a template bundle.
type Snapshot struct {
	Owner     string
	Repo      string
	Ref       string
	CachePath string
	FetchedAt time.Time
	FromCache bool
}

// Fetcher downloads and caches template bundles.
type Fetcher struct {
	cacheDir   string
	baseURL    string
	token      string
	maxAge     time.Duration
	refresh    bool
	httpClient *http.Client
	userAgent  string
	now        func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithBaseURL points the fetcher at another GitHub API root, such as a
// GitHub Enterprise host or a test server.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithToken authenticates requests for private repositories and higher
// rate limits.
func WithToken(token string) Option {
	return func(f *Fetcher) { f.token = token }
}

// WithMaxAge sets how long a cached snapshot stays fresh.
func WithMaxAge(d time.Duration) Option {
	return func(f *Fetcher) { f.maxAge = d }
}

// WithRefresh makes every Fetch ignore the cache.
func WithRefresh(refresh bool) Option {
	return func(f *Fetcher) { f.refresh = refresh }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// New creates a Fetcher that caches under cacheDir.
func New(cacheDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		cacheDir:   cacheDir,
		baseURL:    DefaultBaseURL,
		maxAge:     DefaultMaxAge,
		httpClient: http.DefaultClient,
		userAgent:  "web-starter",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns a snapshot of owner/repo at ref, downloading it unless a
// fresh copy is cached. Nothing is written to the cache on failure.
func (f *Fetcher) Fetch(ctx context.Context, owner, repo, ref string) (*Snapshot, error) {
	for _, part := range []struct{ name, value string }{{"owner", owner}, {"repo", repo}, {"ref", ref}} {
		if err := checkSegment(part.name, part.value); err != nil {
			return nil, err
		}
	}

	dir := f.snapshotDir(owner, repo, ref)
	if !f.refresh {
		if m, err := loadMarker(dir); err == nil && m != nil && !isStale(m, f.maxAge, f.now()) {
			if _, err := os.Stat(dir); err == nil {
				return &Snapshot{
					Owner: owner, Repo: repo, Ref: ref,
					CachePath: dir,
					FetchedAt: m.FetchedAt,
					FromCache: true,
				}, nil
			}
		}
	}

	if err := f.download(ctx, owner, repo, ref, dir); err != nil {
		return nil, err
	}

	fetched := f.now()
	if err := saveMarker(dir, &marker{Owner: owner, Repo: repo, Ref: ref, FetchedAt: fetched}); err != nil {
		return nil, err
	}
	return &Snapshot{Owner: owner, Repo: repo, Ref: ref, CachePath: dir, FetchedAt: fetched}, nil
}

// snapshotDir is {cache}/{owner}/{repo}/{ref}, with "/" in ref escaped so a
// branch like "release/1.x" stays one directory.
func (f *Fetcher) snapshotDir(owner, repo, ref string) string {
	return filepath.Join(f.cacheDir, owner, repo, url.PathEscape(ref))
}

// checkSegment rejects values that would escape the cache directory.
func checkSegment(name, v string) error {
	if v == "" {
		return fmt.Errorf("%s is empty", name)
	}
	if v == "." || v == ".." || strings.ContainsAny(v, `\`) || strings.HasPrefix(v, "/") ||
		strings.Contains(v, "../") {
		return fmt.Errorf("invalid %s %q", name, v)
	}
	if name != "ref" && strings.Contains(v, "/") {
		return fmt.Errorf("invalid %s %q", name, v)
	}
	return nil
}

// Clean removes every cached snapshot.
func Clean(cacheDir string) error {
	if err := os.RemoveAll(cacheDir); err != nil {
		return fmt.Errorf("removing cache %s: %w", cacheDir, err)
	}
	return nil
}

package remote

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type tarEntry struct {
	name string
	body string
	mode int64
	typ  byte
}

func buildTarball(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		typ := e.typ
		if typ == 0 {
			typ = tar.TypeReg
		}
		mode := e.mode
		if mode == 0 {
			mode = 0644
		}
		hdr := &tar.Header{Name: e.name, Mode: mode, Size: int64(len(e.body)), Typeflag: typ}
		if typ != tar.TypeReg {
			hdr.Size = 0
		}
		if typ == tar.TypeSymlink {
			hdr.Linkname = e.body
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if typ == tar.TypeReg {
			if _, err := tw.Write([]byte(e.body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func templateTarball(t *testing.T) []byte {
	return buildTarball(t, []tarEntry{
		{name: "pax_global_header", typ: tar.TypeXGlobalHeader},
		{name: "forumone-web-starter-abc123/", typ: tar.TypeDir},
		{name: "forumone-web-starter-abc123/README.md", body: "# starter\n"},
		{name: "forumone-web-starter-abc123/.gitignore", body: "node_modules\n"},
		{name: "forumone-web-starter-abc123/bin/build.sh", body: "#!/bin/sh\n", mode: 0755},
		{name: "forumone-web-starter-abc123/_Gemfile", body: "gem\n"},
		{name: "forumone-web-starter-abc123/link", body: "README.md", typ: tar.TypeSymlink},
	})
}

// newServer serves tarball for the expected path and counts requests.
func newServer(t *testing.T, tarball []byte, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/repos/forumone/web-starter/tarball/1.1.x" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "token secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write(tarball)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	var hits int32
	srv := newServer(t, templateTarball(t), &hits)
	cache := t.TempDir()

	f := New(cache, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithToken("secret"))
	snap, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.FromCache {
		t.Error("first fetch reported as cached")
	}
	if want := filepath.Join(cache, "forumone", "web-starter", "1.1.x"); snap.CachePath != want {
		t.Errorf("CachePath = %s, want %s", snap.CachePath, want)
	}

	for _, rel := range []string{"README.md", ".gitignore", "bin/build.sh", "_Gemfile"} {
		if _, err := os.Stat(filepath.Join(snap.CachePath, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s missing from snapshot: %v", rel, err)
		}
	}
	if _, err := os.Lstat(filepath.Join(snap.CachePath, "link")); err == nil {
		t.Error("symlink entry extracted")
	}
	if _, err := os.Stat(filepath.Join(snap.CachePath, "pax_global_header")); err == nil {
		t.Error("pax header extracted")
	}
	if _, err := os.Stat(snap.CachePath + markerSuffix); err != nil {
		t.Errorf("marker missing: %v", err)
	}
}

func TestFetch_ReusesFreshCache(t *testing.T) {
	var hits int32
	srv := newServer(t, templateTarball(t), &hits)
	f := New(t.TempDir(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithToken("secret"))

	if _, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x"); err != nil {
		t.Fatal(err)
	}
	snap, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x")
	if err != nil {
		t.Fatal(err)
	}
	if !snap.FromCache {
		t.Error("second fetch not served from cache")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestFetch_StaleCacheRefetches(t *testing.T) {
	var hits int32
	srv := newServer(t, templateTarball(t), &hits)
	f := New(t.TempDir(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithToken("secret"), WithMaxAge(time.Hour))

	if _, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x"); err != nil {
		t.Fatal(err)
	}
	f.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	snap, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x")
	if err != nil {
		t.Fatal(err)
	}
	if snap.FromCache || atomic.LoadInt32(&hits) != 2 {
		t.Errorf("stale cache reused (hits=%d)", hits)
	}
}

func TestFetch_Refresh(t *testing.T) {
	var hits int32
	srv := newServer(t, templateTarball(t), &hits)
	cache := t.TempDir()
	opts := []Option{WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithToken("secret")}

	if _, err := New(cache, opts...).Fetch(context.Background(), "forumone", "web-starter", "1.1.x"); err != nil {
		t.Fatal(err)
	}
	f := New(cache, append(opts, WithRefresh(true))...)
	if _, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
}

func TestFetch_NotFound(t *testing.T) {
	var hits int32
	srv := newServer(t, templateTarball(t), &hits)
	cache := t.TempDir()
	f := New(cache, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := f.Fetch(context.Background(), "forumone", "web-starter", "9.9.x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(filepath.Join(cache, "forumone", "web-starter", "9.9.x")); err == nil {
		t.Error("snapshot written for a failed fetch")
	}
}

func TestFetch_RejectsTraversal(t *testing.T) {
	evil := buildTarball(t, []tarEntry{
		{name: "top/ok.txt", body: "ok"},
		{name: "top/../../escape.txt", body: "gotcha"},
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(evil)
	}))
	defer srv.Close()

	cache := t.TempDir()
	f := New(cache, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := f.Fetch(context.Background(), "forumone", "web-starter", "1.1.x")
	if err == nil {
		t.Fatal("expected traversal rejection")
	}
	if _, err := os.Stat(filepath.Join(cache, "forumone", "web-starter", "1.1.x")); err == nil {
		t.Error("snapshot left behind after rejected archive")
	}
}

func TestFetch_InvalidCoordinates(t *testing.T) {
	f := New(t.TempDir())
	cases := [][3]string{
		{"", "web-starter", "1.1.x"},
		{"..", "web-starter", "1.1.x"},
		{"forumone", "a/b", "1.1.x"},
		{"forumone", "web-starter", "../../etc"},
	}
	for _, c := range cases {
		if _, err := f.Fetch(context.Background(), c[0], c[1], c[2]); err == nil {
			t.Errorf("Fetch(%q, %q, %q) succeeded", c[0], c[1], c[2])
		}
	}
}

func TestStripTopDir(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"repo-sha/README.md", "README.md", true},
		{"repo-sha/docs/", "docs", true},
		{"repo-sha/", "", false},
		{"pax_global_header", "", false},
	}
	for _, tt := range tests {
		got, ok := stripTopDir(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("stripTopDir(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestClean(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	if err := os.MkdirAll(filepath.Join(cache, "a", "b"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := Clean(cache); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cache); !os.IsNotExist(err) {
		t.Errorf("cache still exists: %v", err)
	}
}

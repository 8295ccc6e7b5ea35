// Package remote fetches template bundles from GitHub repositories and keeps
// an extracted snapshot of each revision in a local cache.
package remote

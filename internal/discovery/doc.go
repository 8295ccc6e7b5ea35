// Package discovery finds add-on packages on disk and turns the ones that
// integrate with web-starter into the selection catalog.
//
// An add-on package is a directory named "generator-<name>" under one of the
// search roots. Each of its lookup directories (".", "generators",
// "lib/generators") may hold sub-generators: immediate subdirectories that
// contain an addon.yaml. A sub-generator's namespace is "<name>:<subdir>",
// and only "<name>:web-starter" entries reach the catalog.
package discovery

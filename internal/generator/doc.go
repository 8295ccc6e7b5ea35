// Package generator runs one scaffolding session: it discovers add-ons,
// collects answers, fetches the template snapshot, composes the selected
// add-ons over a fresh registry, transfers the snapshot and renders the
// project manifests.
package generator

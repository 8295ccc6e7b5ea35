// Package cli defines the Cobra command tree for the web-starter CLI. Each
// file registers one top-level command (new, addon, cache, config, version)
// with the root command. Commands only parse flags and format output; the
// work is done by the generator, install and remote packages.
package cli

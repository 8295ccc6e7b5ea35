// Package registry holds the shared contributions of one scaffold run. Add-ons
// publish plugin artifacts and dev-dependency ranges here while they run; the
// manifest step reads the dependency namespace once every add-on has finished.
package registry

// Package install manages add-on packages in the user add-on root: cloning
// them from git, pulling updates, and linking local checkouts for
// development.
package install

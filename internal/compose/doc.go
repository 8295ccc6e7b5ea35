// Package compose runs the selected add-ons of a scaffold, one after another,
// against a shared Registry.
//
// Each add-on receives a Host: the six Registry operations plus a handle on
// the run that owns it, through which it reads and extends the shared answers
// and stages files under the destination. Add-ons may overwrite each other's
// contributions and files; the last writer wins.
package compose

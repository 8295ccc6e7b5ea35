// Package transfer materializes a template snapshot into a project
// directory.
//
// A file whose name starts with "_" is a template source. The same path
// without the "_" is its placeholder. Neither half of such a pair is copied:
// sources are consumed by whoever renders them, and the placeholder is the
// output they render into. Every other file is copied through a template
// pass that only reacts to "<$ ... $>" and has no data, so ordinary "{{ }}"
// content passes through untouched.
package transfer

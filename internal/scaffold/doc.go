// Package scaffold renders the project manifests (Gemfile, package.json,
// bower.json) once every add-on has run. Dependencies collected in the
// Registry are written straight into package.json as text; nothing is
// installed.
package scaffold

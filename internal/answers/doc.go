// Package answers defines the answers record a scaffold run renders from and
// persists the user's answers between runs in the project's .yo-rc.json.
package answers

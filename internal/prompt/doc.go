// Package prompt defines the question schema add-ons and the generator ask
// with, and the Askers that answer them: a huh form on a terminal, numbered
// menus over plain streams, or fixed values for non-interactive runs.
package prompt

// Package config manages user-level settings stored at ~/.web-starter/config.yaml.
// It provides functions to load, read, and write configuration keys such as the
// template repository, extra add-on search paths, and the snapshot cache lifetime.
package config
